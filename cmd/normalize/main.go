package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/juruen/digitrec/canvas"
)

func main() {
	inputName := flag.String("i", "", "image to normalize")
	outputName := flag.String("o", "", "output png, defaults to <input>.normalized.png")
	size := flag.Int("size", canvas.DefaultWidth, "side of the square surface")
	dataURL := flag.Bool("d", false, "print the data url sent to the recognition service instead of writing a file")
	flag.Parse()

	if err := normalize(*inputName, *outputName, *size, *dataURL); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func normalize(inputName, outputName string, size int, dataURL bool) error {
	if inputName == "" {
		return errors.New("missing input, use -i")
	}
	if size <= 0 {
		return fmt.Errorf("invalid size %d", size)
	}

	data, err := os.ReadFile(inputName)
	if err != nil {
		return err
	}

	surface := canvas.NewSurface(size, size, canvas.DefaultStyle())
	placement, err := canvas.PlaceImageCentered(surface, data)
	if err != nil {
		return fmt.Errorf("%s: %w", inputName, err)
	}

	if dataURL {
		payload, err := surface.DataURL()
		if err != nil {
			return err
		}
		fmt.Println(payload)
		return nil
	}

	if outputName == "" {
		nameOnly := strings.TrimSuffix(inputName, filepath.Ext(inputName))
		outputName = nameOnly + ".normalized.png"
	}

	out, err := surface.EncodePNG()
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputName, out, 0644); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "%s -> %s, placed at %v (scale %.3f)\n", inputName, outputName, placement.Rect(), placement.Scale)
	return nil
}
