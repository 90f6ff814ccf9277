package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"log/slog"

	"github.com/hupe1980/blockfs"
)

func main() {
	fs := blockfs.New(
		blockfs.WithLogger(blockfs.NewTextLogger(slog.LevelDebug)),
		blockfs.WithMemoryLimit(1 << 20),
	)
	defer fs.Close()

	fmt.Println("--- Write ---")

	fd, err := fs.Open("greeting.txt", blockfs.Create)
	if err != nil {
		log.Fatal(err)
	}
	if _, err := fs.Write(fd, []byte("hello, block-chained world")); err != nil {
		log.Fatal(err)
	}
	if err := fs.CloseFd(fd); err != nil {
		log.Fatal(err)
	}

	fmt.Println("--- Read back via the io adapter ---")

	f, err := fs.OpenFile("greeting.txt", blockfs.ReadOnly)
	if err != nil {
		log.Fatal(err)
	}
	data, err := io.ReadAll(f)
	if err != nil {
		log.Fatal(err)
	}
	f.Close()
	fmt.Printf("content: %q\n", data)

	fmt.Println("--- Snapshot round trip ---")

	var buf bytes.Buffer
	if err := fs.SaveToWriter(&buf); err != nil {
		log.Fatal(err)
	}
	fmt.Println("snapshot bytes:", buf.Len())

	restored, err := blockfs.NewFromReader(&buf)
	if err != nil {
		log.Fatal(err)
	}
	defer restored.Close()

	st := restored.Stats()
	fmt.Printf("restored: %d file(s), %d block(s), %d bytes reserved\n",
		st.Files, st.BlocksInUse, st.BytesReserved)
}
