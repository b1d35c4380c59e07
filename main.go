//    RumorLensGo
//    Copyright: M Kellner 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/profile"

	"github.com/m-kellner/RumorLensGo/internal/cls"
	"github.com/m-kellner/RumorLensGo/internal/enc"
	"github.com/m-kellner/RumorLensGo/internal/feat"
	"github.com/m-kellner/RumorLensGo/internal/lda"
	"github.com/m-kellner/RumorLensGo/internal/llm"
	"github.com/m-kellner/RumorLensGo/internal/lnch"
	"github.com/m-kellner/RumorLensGo/internal/mdl"
	"github.com/m-kellner/RumorLensGo/internal/mm"
	"github.com/m-kellner/RumorLensGo/internal/str"
	"github.com/m-kellner/RumorLensGo/internal/trn"
	"github.com/m-kellner/RumorLensGo/internal/vdb"
	"github.com/m-kellner/RumorLensGo/internal/viz"
	"github.com/m-kellner/RumorLensGo/internal/vv"
	"github.com/m-kellner/RumorLensGo/internal/w2v"
	"github.com/m-kellner/RumorLensGo/internal/web"
)

func main() {
	const (
		FAIL1 = "unknown subcommand '%s'; try '-h'"
		FAIL2 = "no subcommand given; try '-h'"
	)

	sub := ""
	args := os.Args[1:]
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		sub = args[0]
		args = args[1:]
	}

	lnch.ConfigAtLaunch(args)

	if lnch.Config.ProfileCPU {
		defer profile.Start().Stop()
	}

	ctx := context.Background()

	var err error
	switch sub {
	case "train":
		err = runtrain(ctx)
	case "infer":
		err = runinfer(ctx)
	case "topics":
		err = runtopics(ctx)
	case "sentiment":
		err = runclassify(ctx, cls.TASKSENTIMENT)
	case "fakenews":
		err = runclassify(ctx, cls.TASKFAKENEWS)
	case "neighbors":
		err = runneighbors(ctx)
	case "serve":
		err = runserve(ctx)
	case "":
		mm.Msg(FAIL2, mm.MSGMAND)
		os.Exit(1)
	default:
		mm.Msg(fmt.Sprintf(FAIL1, sub), mm.MSGMAND)
		os.Exit(1)
	}

	mm.Chke(err)
}

// buildencoder - the configured text encoder: the hashing fallback or a bert model
func buildencoder() (enc.TextEncoder, error) {
	name := lnch.Config.EncoderModel
	if name == vv.DEFAULTENCODER {
		return enc.NewHashingEncoder(vv.HASHINGENCODERDIM), nil
	}
	if name == "bert" {
		// shorthand for the standard sentence encoder
		name = vv.CYBERTRONMINILM
	}

	ce, err := enc.NewCybertronEncoder(lnch.Config.EncoderDir, name)
	if err != nil {
		return nil, err
	}
	return enc.NewCachingEncoder(ce), nil
}

// preparesamples - load a tsv and turn it into model-ready samples
func preparesamples(wantlabels bool) ([]str.PostRecord, []str.Sample, *lda.TopicModel, error) {
	posts, err := feat.LoadPosts(lnch.Config.InputFile, wantlabels)
	if err != nil {
		return nil, nil, nil, err
	}

	texts := make([]string, len(posts))
	for i, p := range posts {
		texts[i] = p.Text
	}

	tm, err := lda.FitTopics(texts, lnch.Config.Topics, lnch.Config.LDAIterations, lnch.Config.WorkerCount)
	if err != nil {
		return nil, nil, nil, err
	}

	samples, err := feat.BuildSamples(posts, tm)
	if err != nil {
		return nil, nil, nil, err
	}

	return posts, samples, tm, nil
}

// runtrain - fit the multimodal classifier and checkpoint the best epoch
func runtrain(ctx context.Context) error {
	start := time.Now()
	previous := time.Now()

	_, samples, _, err := preparesamples(true)
	if err != nil {
		return err
	}

	encoder, err := buildencoder()
	if err != nil {
		return err
	}
	mm.Timer("T1", fmt.Sprintf("%d samples prepared", len(samples)), start, previous)
	previous = time.Now()

	model, err := mdl.NewModel(lnch.Config.Topics, vv.DEFAULTSENTDIM, encoder.Dim(),
		lnch.Config.GateHidden, lnch.Config.HeadHidden, lnch.Config.Dropout, lnch.Config.Seed)
	if err != nil {
		return err
	}

	train, val := feat.Split(samples, vv.DEFAULTVALIDSPLIT)

	trainer := &trn.Trainer{
		Model:        model,
		Encoder:      encoder,
		Epochs:       lnch.Config.Epochs,
		BatchSize:    lnch.Config.BatchSize,
		LearningRate: lnch.Config.LearningRate,
		CheckpointFl: lnch.Config.CheckpointFl,
		Seed:         lnch.Config.Seed,
	}

	if _, err := trainer.Run(ctx, train, val); err != nil {
		return err
	}

	mm.Timer("T2", "training finished", start, previous)
	return nil
}

// runinfer - classify every post in the input with the saved checkpoint
func runinfer(ctx context.Context) error {
	const (
		MSG1 = "%s\t%s\t%.4f\t%.40s"
	)

	posts, samples, _, err := preparesamples(false)
	if err != nil {
		return err
	}

	encoder, err := buildencoder()
	if err != nil {
		return err
	}

	model, err := mdl.Load(lnch.Config.CheckpointFl, lnch.Config.Seed)
	if err != nil {
		return err
	}

	preds, err := trn.PredictAll(ctx, model, encoder, samples, lnch.Config.BatchSize)
	if err != nil {
		return err
	}

	for i, p := range preds {
		mm.Msg(fmt.Sprintf(MSG1, posts[i].ID, cls.LabelName(p.Label), p.Confidence, posts[i].Text), mm.MSGCRIT)
	}
	return nil
}

// runtopics - model topics, write the html artifacts, and ask the llm to name each topic
func runtopics(ctx context.Context) error {
	const (
		MSG1 = "topic %d: [%s] %s"
	)

	_, _, tm, err := preparesamples(false)
	if err != nil {
		return err
	}

	for t := 0; t < tm.NumTopics; t++ {
		mm.Msg(fmt.Sprintf("topic %d: %s (%d docs)", t+1, strings.Join(tm.TopWords[t], ", "), tm.DocsPerTopic()[t]), mm.MSGCRIT)
	}

	if err := viz.WriteArtifacts(tm); err != nil {
		return err
	}

	client := llm.NewClient(lnch.Config.LLMURL, lnch.Config.LLMModel, lnch.Config.LLMStream)
	if err := client.CheckModel(ctx); err != nil {
		mm.Msg(err.Error(), mm.MSGWARN)
		return nil
	}

	summaries := tm.Summaries(func(topic int, words []string) str.TopicSummary {
		return cls.SummarizeTopic(ctx, client, topic, words)
	})
	for _, ts := range summaries {
		mm.Msg(fmt.Sprintf(MSG1, ts.Topic+1, strings.Join(ts.TopWords, ", "), ts.Summary), mm.MSGCRIT)
	}
	return nil
}

// runclassify - prompt-classify each post via the llm; score accuracy when labels exist
func runclassify(ctx context.Context, task string) error {
	const (
		MSG1 = "%s\t%s"
	)

	wantlabels := task == cls.TASKFAKENEWS

	posts, err := feat.LoadPosts(lnch.Config.InputFile, wantlabels)
	if err != nil {
		return err
	}

	client := llm.NewClient(lnch.Config.LLMURL, lnch.Config.LLMModel, lnch.Config.LLMStream)
	if err := client.CheckModel(ctx); err != nil {
		return err
	}

	cache, err := vdb.OpenCache(lnch.Config.DBFile, task, client.Model)
	if err != nil {
		return err
	}
	defer cache.Close()

	classifier := &cls.Classifier{Client: client, Cache: cache}
	results := classifier.ClassifyPosts(ctx, task, posts)

	if wantlabels {
		cls.Evaluate(results).Report()
	} else {
		for _, r := range results {
			verdict := cls.SentimentName(r.Answer)
			if r.Answer < 0 {
				// nothing canonical to report; show what the llm actually said
				verdict = strings.TrimSpace(r.RawReply)
			}
			mm.Msg(fmt.Sprintf(MSG1, r.PostID, verdict), mm.MSGCRIT)
		}
	}
	return nil
}

// runneighbors - nearest embedding-space neighbors for the top words of every topic
func runneighbors(ctx context.Context) error {
	const (
		MSG1 = "%s: %s"
	)

	_, _, tm, err := preparesamples(false)
	if err != nil {
		return err
	}

	searcher, err := w2v.Train(tm.Corpus)
	if err != nil {
		return err
	}

	nn := w2v.TopicNeighbors(searcher, tm.TopWords, vv.W2VNEIGHBORS)
	for word, neighbors := range nn {
		var pretty []string
		for _, n := range neighbors {
			pretty = append(pretty, fmt.Sprintf("%s (%.3f)", n.Word, n.Similarity))
		}
		mm.Msg(fmt.Sprintf(MSG1, word, strings.Join(pretty, ", ")), mm.MSGCRIT)
	}
	return nil
}

// runserve - load the checkpoint and serve classifications over http
func runserve(ctx context.Context) error {
	encoder, err := buildencoder()
	if err != nil {
		return err
	}

	model, err := mdl.Load(lnch.Config.CheckpointFl, lnch.Config.Seed)
	if err != nil {
		return err
	}

	web.StartEchoServer(&web.Server{Model: model, Encoder: encoder})
	return nil
}
