package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"nhbridge/config"
	"nhbridge/core/events"
	nhbstate "nhbridge/core/state"
	"nhbridge/crypto"
	"nhbridge/native/bridge"
	"nhbridge/observability/logging"
	telemetry "nhbridge/observability/otel"
	"nhbridge/storage"
)

// validatorPassEnv names the environment variable the node reads its
// validator keystore passphrase from.
const validatorPassEnv = "NHBRIDGE_VALIDATOR_PASS"

func main() {
	configFile := flag.String("config", "./config.toml", "Path to the configuration file")
	flag.Parse()

	env := strings.TrimSpace(os.Getenv("NHB_ENV"))
	logging.Setup("bridged", env)

	otlpEndpoint := strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"))
	otlpHeaders := telemetry.ParseHeaders(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"))
	shutdownTelemetry, err := telemetry.Init(context.Background(), telemetry.Config{
		ServiceName: "bridged",
		Environment: env,
		Endpoint:    otlpEndpoint,
		Headers:     otlpHeaders,
		Insecure:    true,
		Metrics:     otlpEndpoint != "",
		Traces:      otlpEndpoint != "",
	})
	if err != nil {
		panic(fmt.Sprintf("failed to initialise telemetry: %v", err))
	}
	defer func() {
		if shutdownTelemetry != nil {
			_ = shutdownTelemetry(context.Background())
		}
	}()

	passphrase := os.Getenv(validatorPassEnv)
	if passphrase == "" {
		panic(fmt.Sprintf("%s must be set to the validator keystore passphrase", validatorPassEnv))
	}

	cfg, err := config.Load(*configFile, config.WithKeystorePassphrase(passphrase))
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	db, err := storage.NewLevelDB(cfg.DataDir)
	if err != nil {
		panic(fmt.Sprintf("failed to open database: %v", err))
	}
	defer db.Close()

	if err := nhbstate.EnsureStateVersion(db, false); err != nil {
		panic(fmt.Sprintf("state schema check failed: %v", err))
	}
	manager := nhbstate.NewManager(db)

	validatorKey, err := cfg.LoadValidatorKey(passphrase)
	if err != nil {
		panic(fmt.Sprintf("failed to load validator key: %v", err))
	}
	fmt.Printf("bridge node identity: %s\n", validatorKey.PubKey().Address().String())

	genesisAuthorities, err := decodeAuthorities(cfg.GenesisAuthorities)
	if err != nil {
		panic(fmt.Sprintf("failed to decode genesis authorities: %v", err))
	}

	emitter := events.NoopEmitter{}
	ledger := bridge.NewStateLedger(manager)
	module := bridge.New(manager, ledger, emitter)
	if err := module.InitGenesis(genesisAuthorities); err != nil {
		panic(fmt.Sprintf("failed to seed bridge genesis authorities: %v", err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println("--- bridge module initialised; awaiting transactions routed to Module.Dispatch ---")
	<-ctx.Done()
	fmt.Println("--- bridge module shutting down ---")
}

// decodeAuthorities turns the bech32-encoded genesis authority list from
// configuration into the raw AccountID form the module operates on.
func decodeAuthorities(raw []string) ([]bridge.AccountID, error) {
	out := make([]bridge.AccountID, 0, len(raw))
	for _, addrStr := range raw {
		addr, err := crypto.DecodeAddress(strings.TrimSpace(addrStr))
		if err != nil {
			return nil, fmt.Errorf("decode authority %q: %w", addrStr, err)
		}
		var id bridge.AccountID
		copy(id[:], addr.Bytes())
		out = append(out, id)
	}
	return out, nil
}
