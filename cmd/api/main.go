package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	apianalysis "finsight/pkg/api/analysis"
	apichat "finsight/pkg/api/chat"
	apiexport "finsight/pkg/api/export"
	"finsight/pkg/core/agent"
	"finsight/pkg/core/analyze"
	"finsight/pkg/core/prompt"
	"finsight/pkg/core/ratelimit"
	"finsight/pkg/core/store"
)

func main() {
	// Load environment variables
	godotenv.Load()

	ctx := context.Background()

	// Initialize Prompt Library
	resourcesPath := "resources"
	if _, err := os.Stat(resourcesPath); os.IsNotExist(err) {
		// Try from executable directory
		exePath, _ := os.Executable()
		resourcesPath = filepath.Join(filepath.Dir(exePath), "resources")
	}
	if err := prompt.LoadFromDirectory(resourcesPath); err != nil {
		fmt.Printf("[WARNING] Failed to load prompt library: %v\n", err)
		fmt.Println("  Falling back to hardcoded prompts")
	} else {
		fmt.Printf("[PROMPT] Loaded %d prompts from %s\n", prompt.Get().Count(), resourcesPath)
	}

	// Initialize provider manager from config
	var agentCfg agent.Config
	if configData, err := os.ReadFile("config/models.yaml"); err == nil {
		if err := yaml.Unmarshal(configData, &agentCfg); err != nil {
			fmt.Printf("[WARNING] Invalid config/models.yaml: %v\n", err)
		}
	}
	agentMgr, err := agent.NewManager(ctx, agentCfg)
	if err != nil {
		fmt.Printf("[FATAL] Failed to initialize LLM providers: %v\n", err)
		os.Exit(1)
	}

	// Database
	if err := store.InitDB(ctx); err != nil {
		fmt.Printf("[FATAL] Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	// Shared collaborators
	svc := analyze.NewService(agentMgr)
	repo := store.NewAnalysisRepo()
	limiter := ratelimit.NewMemoryStore()

	// Analysis endpoints
	analysisHandler := apianalysis.NewHandler(svc, repo, limiter)
	http.HandleFunc("/api/analysis/generate", analysisHandler.HandleGenerate)
	http.HandleFunc("/api/analysis/regenerate", analysisHandler.HandleRegenerate)
	http.HandleFunc("/api/analysis/delete", analysisHandler.HandleDelete)
	http.HandleFunc("/api/dashboard", analysisHandler.HandleDashboard)

	// Chat endpoint
	chatHandler := apichat.NewHandler(svc, repo, limiter)
	http.HandleFunc("/api/chat", chatHandler.HandleChat)

	// Export endpoint
	exportHandler := apiexport.NewHandler(repo)
	http.HandleFunc("/api/export", exportHandler.HandleExport)

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	fmt.Printf("API server starting on %s...\n", addr)
	fmt.Println("  - POST /api/analysis/generate")
	fmt.Println("  - POST /api/analysis/regenerate")
	fmt.Println("  - POST /api/analysis/delete")
	fmt.Println("  - GET  /api/dashboard")
	fmt.Println("  - POST /api/chat")
	fmt.Println("  - POST /api/export")

	if err := http.ListenAndServe(addr, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
