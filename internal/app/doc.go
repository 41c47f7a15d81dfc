// Package app wires the dashboard server together and manages its
// lifecycle.
//
// # Initialization Flow
//
//  1. Load configuration from defaults, an optional YAML file and PDX_* variables
//  2. Initialize logging and OpenTelemetry
//  3. Create the websocket hub, dashboard service and health service
//  4. Build the chi router with the middleware chain and handlers
//  5. Serve HTTP and run the hub under one errgroup
//  6. Shut down on context cancellation
//
// # Usage
//
//	application, err := app.NewApplication(nil, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	if err := application.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package app
