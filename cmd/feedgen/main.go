// feedgen writes a JSONL feed file for the vespa-feed tooling: one put
// operation per chunk, embeddings included. Useful for bulk-loading a store
// without going through the API.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/chiheb08/vespa-vectorstore/internal/chunker"
	"github.com/chiheb08/vespa-vectorstore/internal/config"
	"github.com/chiheb08/vespa-vectorstore/internal/extract"
	"github.com/chiheb08/vespa-vectorstore/internal/llm/ollama"
	"github.com/chiheb08/vespa-vectorstore/internal/vespa"
)

func main() {
	in := flag.String("in", "", "Input file (text or PDF)")
	docID := flag.String("doc-id", "", "Document id (defaults to the input filename)")
	tenantID := flag.String("tenant", "", "Tenant id")
	source := flag.String("source", "", "Source tag")
	out := flag.String("o", "", "Output JSONL file (defaults to stdout)")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "Usage: feedgen -in <file> [-doc-id id] [-tenant t] [-source s] [-o out.jsonl]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := run(*in, *docID, *tenantID, *source, *out); err != nil {
		log.Error().Err(err).Msg("feedgen failed")
		os.Exit(1)
	}
}

func run(in, docID, tenantID, source, out string) error {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	data, err := os.ReadFile(in)
	if err != nil {
		return err
	}

	text, err := extract.Text(filepath.Base(in), data, "")
	if err != nil {
		return err
	}

	if docID == "" {
		docID = filepath.Base(in)
	}

	store, err := vespa.NewClient(cfg.VespaURL, cfg.VespaNamespace, cfg.VespaDocType)
	if err != nil {
		return err
	}

	embedder, err := ollama.NewClient(cfg.OllamaURL, cfg.EmbedModel, cfg.ChatModel, cfg.EmbedDim)
	if err != nil {
		return err
	}

	var w *bufio.Writer
	if out == "" {
		w = bufio.NewWriter(os.Stdout)
	} else {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = bufio.NewWriter(f)
	}
	defer w.Flush()

	chunks, err := chunker.New(cfg.ChunkWords, cfg.OverlapWords)
	if err != nil {
		return fmt.Errorf("invalid chunking config: %w", err)
	}

	pieces := chunks.Split(text)
	if len(pieces) == 0 {
		return fmt.Errorf("%s has no indexable text", in)
	}

	encoder := json.NewEncoder(w)
	for i, piece := range pieces {
		chunkID := fmt.Sprintf("%s::chunk-%d", docID, i)

		vec, err := embedder.Embed(ctx, piece)
		if err != nil {
			return fmt.Errorf("embedding %s: %w", chunkID, err)
		}

		op := vespa.FeedOperation{
			Put: store.DocumentID(chunkID),
			Fields: vespa.FeedFields{
				ChunkID:   chunkID,
				DocID:     docID,
				TenantID:  tenantID,
				Source:    source,
				Text:      piece,
				Embedding: vespa.TensorValues{Values: vec},
			},
		}
		if err := encoder.Encode(op); err != nil {
			return err
		}
	}

	log.Info().Str("doc_id", docID).Int("chunks", len(pieces)).Msg("feed file generated")
	return nil
}
