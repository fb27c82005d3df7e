package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"retention-workers/internal/assessment"
	"retention-workers/internal/classifier"
	"retention-workers/internal/common/config"
	"retention-workers/internal/models"
	"retention-workers/internal/render"
)

type assessOptions struct {
	file          string
	probability   float64
	classifierURL string
	timeout       time.Duration
	asJSON        bool
	width         int
}

func newAssessCmd() *cobra.Command {
	opts := &assessOptions{}

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Assess one student record",
		Long: `Reads a student record as JSON (use --file - for stdin) and prints its risk assessment.

Without --probability the record is scored by the model server at --classifier-url
(default $MODEL_SERVER_URL).`,
		Example: `  risk-cli assess --file student.json
  risk-cli assess --file student.json --probability 0.55 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssess(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.file, "file", "f", "", "Path to the student record JSON, or - for stdin")
	f.Float64VarP(&opts.probability, "probability", "p", 0, "Use this dropout probability instead of calling the classifier")
	f.StringVar(&opts.classifierURL, "classifier-url", os.Getenv("MODEL_SERVER_URL"), "Base URL of the model server")
	f.DurationVar(&opts.timeout, "timeout", 5*time.Second, "Classifier request timeout")
	f.BoolVar(&opts.asJSON, "json", false, "Print the assessment as JSON")
	f.IntVar(&opts.width, "width", 0, "Terminal width for the report")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runAssess(cmd *cobra.Command, opts *assessOptions) error {
	record, err := readRecord(cmd.InOrStdin(), opts.file)
	if err != nil {
		return err
	}

	log := newLogger(cmd)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var result assessment.Assessment
	if cmd.Flags().Changed("probability") {
		svc := assessment.NewService(nil, nil, log)
		result, err = svc.EvaluateWithProbability(ctx, record, opts.probability, "cli")
	} else {
		if opts.classifierURL == "" {
			return classifier.ErrModelUnavailable
		}
		remote := classifier.NewRemote(config.ClassifierConfig{
			URL:     opts.classifierURL,
			Timeout: int(opts.timeout / time.Millisecond),
		}, log)
		if err := remote.Ready(ctx); err != nil {
			return err
		}
		result, err = assessment.NewService(remote, nil, log).Evaluate(ctx, record, "cli")
	}
	if err != nil {
		return err
	}

	view := render.NewView(result, record)
	out := cmd.OutOrStdout()
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Assessment assessment.Assessment `json:"assessment"`
			View       render.View           `json:"view"`
		}{result, view})
	}

	_, err = fmt.Fprintln(out, render.NewTerminal(opts.width).Render(view))
	return err
}

func readRecord(stdin io.Reader, path string) (models.Record, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return models.Record{}, fmt.Errorf("read record: %w", err)
	}

	record, err := models.DecodeRecord(data)
	if err != nil {
		return models.Record{}, fmt.Errorf("parse record %s: %w", path, err)
	}
	return record, nil
}
