//-------------------------------------------------------------------------
//
// pgEdge Textile Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package sales

import (
	"context"
	"fmt"

	"github.com/pgEdge/pgedge-textilegen/internal/datagen"
)

// Sink persists a batch of sale records in one durable write.
// Implementations must not retain the slice after returning.
type Sink interface {
	WriteSales(ctx context.Context, records []Record) error
}

// BatchWriter buffers records and flushes them to a Sink every batchSize
// records. Records still buffered when the process dies are lost.
type BatchWriter struct {
	sink      Sink
	batchSize int
	buf       []Record
	flushes   int
	progress  *datagen.ProgressReporter
}

// NewBatchWriter creates a writer flushing every batchSize records.
func NewBatchWriter(sink Sink, batchSize int) (*BatchWriter, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", batchSize)
	}
	return &BatchWriter{
		sink:      sink,
		batchSize: batchSize,
		buf:       make([]Record, 0, batchSize),
		progress:  datagen.NewProgressReporter("sales", 0, 0),
	}, nil
}

// Add buffers a record, flushing when the batch is full.
func (w *BatchWriter) Add(ctx context.Context, r Record) error {
	w.buf = append(w.buf, r)
	if len(w.buf) >= w.batchSize {
		return w.Flush(ctx)
	}
	return nil
}

// Flush writes any buffered records.
func (w *BatchWriter) Flush(ctx context.Context) error {
	if len(w.buf) == 0 {
		return nil
	}
	if err := w.sink.WriteSales(ctx, w.buf); err != nil {
		return fmt.Errorf("failed to write sales batch: %w", err)
	}
	w.flushes++
	w.progress.Update(int64(len(w.buf)))
	w.buf = w.buf[:0]
	return nil
}

// Close flushes the remainder and logs the final count.
func (w *BatchWriter) Close(ctx context.Context) error {
	if err := w.Flush(ctx); err != nil {
		return err
	}
	w.progress.Done()
	return nil
}

// Flushes returns the number of batches written.
func (w *BatchWriter) Flushes() int {
	return w.flushes
}

// Written returns the number of records written.
func (w *BatchWriter) Written() int64 {
	return w.progress.Rows()
}

// Buffered returns the number of records awaiting a flush.
func (w *BatchWriter) Buffered() int {
	return len(w.buf)
}
