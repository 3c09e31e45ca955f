// Command pttrace is the host harness: it loads a scene and render
// config, drives the progressive path-tracing loop frame by frame, and
// displays the resolved image in a window, writing it to disk once
// when the configured frame limit is reached.
//
// Grounded on the teacher's cmd/demo/main.go window-loop structure,
// trimmed to the path tracer's three-kernels-per-frame model — no
// player movement, collision, or scene-graph editing, which were
// demo-specific to the teacher's rasterizer sample.
package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"time"

	"pathforge/camera"
	"pathforge/config"
	"pathforge/internal/hostgpu"
	"pathforge/pathtrace"
	"pathforge/resolve"
	"pathforge/rmath"
	"pathforge/sceneasset"
	"pathforge/sdfshapes"
	"pathforge/texture"
)

func main() {
	cfgPath := "pttrace.toml"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Printf("config: %v, writing defaults to %q\n", err, cfgPath)
		cfg = config.Default()
		if werr := config.Save(cfgPath, cfg); werr != nil {
			fmt.Printf("config: could not write defaults: %v\n", werr)
		}
	}

	sceneData, err := os.ReadFile(cfg.ScenePath)
	if err != nil {
		fmt.Printf("scene: %v\n", err)
		return
	}

	scn, quads, err := sceneasset.LoadYAML(sceneData, sceneasset.GLTFLoader{})
	if err != nil {
		fmt.Printf("scene: %v\n", err)
		return
	}

	textures := texture.NewRegistry(nil, texture.NewCheckerRegistry())

	scene := &pathtrace.Scene{
		Tree:       scn.Tree,
		Materials:  scn.Materials,
		Textures:   textures,
		Quads:      quads,
		Lights:     scn.Lights,
		Background: scn.Background,
		SDF:        sdfshapes.Registry{},
	}

	cam := camera.NewPerspective(
		rmath.Vec3{X: 0, Y: 1.7, Z: 6},
		rmath.Vec3{X: 0, Y: 1, Z: 0},
		rmath.Vec3{X: 0, Y: 1, Z: 0},
		cfg.FieldOfViewDegrees/2, // NewPerspective takes the half-angle
		cfg.Width, cfg.Height,
	)

	fb := pathtrace.NewFrameBuffer(cfg.Width, cfg.Height)
	mode := pathtrace.ModeMonteCarlo
	if cfg.Deterministic {
		mode = pathtrace.ModeDeterministic
	}

	windowConfig := hostgpu.DefaultWindowConfig()
	windowConfig.Title = "pttrace"
	windowConfig.Width = cfg.Width
	windowConfig.Height = cfg.Height
	windowConfig.Resizable = false

	window, err := hostgpu.NewWindow(windowConfig)
	if err != nil {
		fmt.Printf("window: %v\n", err)
		return
	}
	defer window.Destroy()

	blitter, err := hostgpu.NewBlitter()
	if err != nil {
		fmt.Printf("blitter: %v\n", err)
		return
	}
	defer blitter.Destroy()

	start := time.Now()
	frame := uint32(0)
	for !window.ShouldClose() {
		window.PollEvents()
		if window.IsKeyPressed(hostgpu.KeyEscape) {
			break
		}

		frame++
		uniforms := pathtrace.Uniforms{
			FrameNumber:          frame,
			GlobalTimeSeconds:    float32(time.Since(start).Seconds()),
			PixelSideSubdivision: cfg.PixelSideSubdivision,
		}
		scene.RenderFrame(cam, fb, uniforms, mode)

		resolveFrame := frame
		if mode == pathtrace.ModeDeterministic {
			resolveFrame = 1 // deterministic frames replace rather than accumulate
		}
		img := resolve.Image(fb.Color, resolveFrame, fb.Width, fb.Height)
		blitter.Upload(img)

		fbw, fbh := window.GetFramebufferSize()
		blitter.Draw(fbw, fbh)
		window.SwapBuffers()

		if cfg.MaxFrames > 0 && int(frame) >= cfg.MaxFrames {
			if err := writePNG(cfg.OutputPath, img); err != nil {
				fmt.Printf("output: %v\n", err)
			} else {
				fmt.Printf("wrote %s after %d frames\n", cfg.OutputPath, frame)
			}
			break
		}
	}
}

func writePNG(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return png.Encode(f, img)
}
