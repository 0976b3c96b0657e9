// Command profileengine is a thin stdin/stdout driver for the guest
// profile conversation engine, useful for manual testing and demos. It
// wires together every component (C1-C10) the way a real caller would:
// build a catalog, the LLM and LinkedIn collaborators, the graph, and a
// session registry, then feeds one line at a time through
// Registry.ProcessMessage.
package main

import (
	"bufio"
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/pglaunch/profileengine/pkg/bucket"
	"github.com/pglaunch/profileengine/pkg/bucketmgr"
	"github.com/pglaunch/profileengine/pkg/classifier"
	"github.com/pglaunch/profileengine/pkg/linkedin"
	"github.com/pglaunch/profileengine/pkg/orchestrator"
	"github.com/pglaunch/profileengine/pkg/question"
	"github.com/pglaunch/profileengine/pkg/response"
	"github.com/pglaunch/profileengine/pkg/session"
	"github.com/pglaunch/profileengine/pkg/strategy"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	catalog := bucket.Default()
	if path := os.Getenv("PROFILEENGINE_BUCKET_OVERLAY"); path != "" {
		if overlaid, err := bucket.LoadOverlay(path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("ignoring unreadable bucket overlay")
		} else {
			catalog = overlaid
		}
	}

	var provider classifier.LLMProvider
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		p, err := classifier.NewOpenAIProvider(apiKey, os.Getenv("OPENAI_BASE_URL"), log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to build openai provider")
		}
		provider = p
	} else {
		log.Warn().Msg("OPENAI_API_KEY unset; classification will fall back to entity extraction only")
	}

	var analyzer orchestrator.LinkedInAnalyzer
	if os.Getenv("PROFILEENGINE_ENABLE_LINKEDIN") != "" {
		analyzer = linkedin.New(nil, log)
	}

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	graph := orchestrator.New(orchestrator.Deps{
		Classifier: classifier.New(provider, log),
		BucketMgr:  bucketmgr.New(log),
		Strategy:   strategy.New(log),
		Response:   response.New(question.New(catalog, rnd), rnd, log),
		LinkedIn:   analyzer,
		Log:        log,
	})

	registry := session.New(graph, catalog, 0, log)
	registry.StartEvictionScan()
	defer registry.Stop()

	fmt.Println("Guest profile engine ready. Type a message (Ctrl-D to quit).")
	scanner := bufio.NewScanner(os.Stdin)
	ctx := context.Background()
	for scanner.Scan() {
		message := scanner.Text()
		if message == "" {
			continue
		}
		result, err := registry.ProcessMessage(ctx, "cli-session", "cli-person", "cli-campaign", message, nil)
		if err != nil {
			fmt.Println("error:", err)
			continue
		}
		fmt.Println(result.ReplyText)
	}
}
