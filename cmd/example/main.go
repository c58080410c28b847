package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	editor "github.com/goliatone/go-editor"
	"github.com/google/uuid"
)

func main() {
	ctx := context.Background()

	cfg := editor.DefaultConfig()
	cfg.Autosave.Debounce = 500 * time.Millisecond
	cfg.Features.Logger = true

	module, err := editor.New(cfg)
	if err != nil {
		log.Fatalf("editor: %v", err)
	}
	defer module.Close(ctx)

	if len(os.Args) > 1 && os.Args[1] == "serve" {
		serve(module)
		return
	}

	if err := runWalkthrough(ctx, module); err != nil {
		log.Fatalf("walkthrough: %v", err)
	}
}

func serve(module *editor.Module) {
	mux := http.NewServeMux()
	if err := module.RegisterRoutes(mux); err != nil {
		log.Fatalf("register routes: %v", err)
	}
	log.Println("editor api listening on :8080")
	if err := http.ListenAndServe(":8080", mux); err != nil {
		log.Fatalf("serve: %v", err)
	}
}

func runWalkthrough(ctx context.Context, module *editor.Module) error {
	store := module.Store()

	node, err := store.Get("hero.title")
	if err != nil {
		return fmt.Errorf("seeded content missing: %w", err)
	}
	fmt.Printf("hero.title = %v\n", node.Value)

	descriptor, err := module.Panel().Describe("hero.title")
	if err != nil {
		return err
	}
	fmt.Printf("panel renders %q as %s\n", descriptor.Label, descriptor.Control)

	buffer, err := module.Panel().Open("hero.title")
	if err != nil {
		return err
	}
	if err := buffer.Set("Build your site in minutes"); err != nil {
		return err
	}
	if _, err := buffer.Apply(); err != nil {
		return err
	}

	// edits autosave on a debounce; flush immediately for the walkthrough
	result := module.Autosave().ForceSave(ctx)
	if result.Err != nil {
		return result.Err
	}
	fmt.Printf("autosaved version %s\n", result.Version)

	snapshot, err := module.Publisher().Publish(ctx, uuid.New())
	if err != nil {
		return err
	}
	fmt.Printf("published version %s with %d nodes\n", snapshot.Version, len(snapshot.Content))

	html, err := module.RichText().Render([]byte("**welcome** to the editor"))
	if err != nil {
		return err
	}
	fmt.Printf("rich text: %s", html)

	published, err := module.Publisher().Published(ctx)
	if err != nil {
		return err
	}
	payload, err := json.MarshalIndent(published.Content["hero.title"], "", "  ")
	if err != nil {
		return err
	}
	fmt.Printf("published hero.title:\n%s\n", payload)

	return nil
}
