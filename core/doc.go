// Package core contains the business logic for PostSheet.
// It is designed to be framework-agnostic and can be used independently
// of any web framework or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - domain: Pure domain models (CaptureRequest, SheetRow, SavedRecord, AIOutcome)
// - canonical: URL canonicalization and content id hashing
// - quota: Per-identity daily counters
// - enrichment: AI summarization client and response normalization
// - records: Local index of saved captures
// - sheets: Spreadsheet append and update client
// - settings: Stored sheet id and license key
// - save: The save orchestrator and its session state
// - workers: Background notification delivery
// - errors: Coded save errors and service error types
// - interfaces: Contracts for external dependencies (cache, HTTP, logger, tokens)
//
// # Design Principles
//
// The core package follows clean architecture principles:
// - No web framework dependencies
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
//
// # Usage Example
//
//	deps := interfaces.Dependencies{
//	    Cache:      myCache,      // implements interfaces.Cache
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	settingsService := settings.NewService(deps.Cache, "")
//	ledger := quota.NewLedger(deps.Cache)
//	enricher := enrichment.NewClient(deps, ledger, settingsService, config.NewEnrichmentConfig())
//
//	orchestrator := save.New(save.Config{
//	    Records:  records.NewStore(deps.Cache),
//	    Sheets:   sheets.NewClient(sheets.Config{}, tokens, deps.Logger),
//	    Enricher: enricher,
//	    Settings: settingsService,
//	    Logger:   deps.Logger,
//	})
//
//	result, err := orchestrator.Save(ctx, domain.CaptureRequest{
//	    URL:         "https://www.linkedin.com/posts/example",
//	    PostContent: "Shipping our new release today",
//	    AIEnabled:   true,
//	})
package core
