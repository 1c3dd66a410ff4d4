// Command heartrain renders a heart-rain animation over a photo, either
// as a one-shot MP4/PNG export or as an HTTP service.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/perbu/heartrain/anim"
	"github.com/perbu/heartrain/encode"
	"github.com/perbu/heartrain/server"
)

func main() {
	var (
		serve      = flag.Bool("serve", false, "run the HTTP server instead of a one-shot export")
		addr       = flag.String("addr", "", "listen address (overrides the config file)")
		configPath = flag.String("config", "", "TOML config file for server mode")
		imagePath  = flag.String("image", "", "background image file (one-shot mode)")
		message    = flag.String("message", "", "caption text")
		output     = flag.String("o", "heartrain.mp4", "output MP4 path (one-shot mode)")
		framesDir  = flag.String("frames", "", "write numbered PNG frames to this directory instead of encoding")
		width      = flag.Int("width", anim.DefaultWidth, "canvas width in pixels")
		height     = flag.Int("height", anim.DefaultHeight, "canvas height in pixels")
		fps        = flag.Int("fps", anim.DefaultFPS, "frames per second")
		duration   = flag.Int("duration", anim.DefaultDuration, "animation length in seconds")
		seed       = flag.Uint64("seed", 0, "random seed for a reproducible animation (0 = random)")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var err error
	if *serve {
		err = runServer(*configPath, *addr, log)
	} else {
		if *imagePath == "" {
			fmt.Fprintf(os.Stderr, "Usage: %s -image photo.jpg -message \"<text>\" [-o out.mp4]\n", os.Args[0])
			fmt.Fprintf(os.Stderr, "       %s -serve [-addr :5000] [-config heartrain.toml]\n", os.Args[0])
			os.Exit(1)
		}
		p := anim.Params{Width: *width, Height: *height, FPS: *fps, Duration: *duration, Hearts: anim.DefaultHearts}
		err = runExport(*imagePath, *message, *output, *framesDir, p, *seed)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runServer loads the config, applies flag overrides and serves HTTP.
func runServer(configPath, addr string, log *slog.Logger) error {
	cfg := server.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = server.LoadConfig(configPath); err != nil {
			return err
		}
	}
	if addr != "" {
		cfg.Addr = addr
	}
	if port := os.Getenv("PORT"); port != "" && addr == "" {
		cfg.Addr = ":" + port
	}
	return server.New(cfg, log).ListenAndServe()
}

// runExport generates one animation and writes it as an MP4, or as a
// directory of numbered PNG frames when framesDir is set.
func runExport(imagePath, message, output, framesDir string, p anim.Params, seed uint64) error {
	f, err := os.Open(imagePath)
	if err != nil {
		return fmt.Errorf("opening background image: %w", err)
	}
	defer f.Close()

	background, err := anim.DecodeBackground(f)
	if err != nil {
		return err
	}

	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed))

	frames, err := anim.GenerateFrames(background, message, p, rng)
	if err != nil {
		return err
	}

	if framesDir != "" {
		if err := os.MkdirAll(framesDir, 0o755); err != nil {
			return fmt.Errorf("creating frames directory: %w", err)
		}
		if err := encode.WriteFrames(framesDir, frames); err != nil {
			return err
		}
		fmt.Printf("Wrote %d frames to %s\n", len(frames), framesDir)
		return nil
	}

	if err := encode.MP4(context.Background(), frames, p.FPS, output); err != nil {
		return err
	}
	fmt.Printf("Successfully generated %s (%d frames at %d fps)\n", output, len(frames), p.FPS)
	return nil
}
