package main

import (
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"

	"github.com/sir_venger/wasm_merge/internal/logging"
	"github.com/sir_venger/wasm_merge/internal/usecase/splitter"
)

// main режет файл на части <name>.partN, которые затем раздаёт partserver.
func main() {
	in := flag.String("in", "index.wasm", "file to split")
	out := flag.String("out", ".", "output directory")
	parts := flag.Int("parts", 3, "number of parts")
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	log := logging.New(*level, "")

	f, err := os.Open(*in)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		log.Fatal(err)
	}
	if err = os.MkdirAll(*out, 0o755); err != nil {
		log.Fatal(err)
	}

	written, err := splitter.Split(context.Background(), f, info.Size(), filepath.Base(*in), *parts,
		func(_ int, name string, r io.Reader) error {
			dst, err := os.Create(filepath.Join(*out, name))
			if err != nil {
				return err
			}
			if _, err = io.Copy(dst, r); err != nil {
				_ = dst.Close()
				return err
			}
			return dst.Close()
		})
	if err != nil {
		log.Fatal(err)
	}

	for _, p := range written {
		log.WithField("bytes", p.Size).Info(p.Name)
	}
}
