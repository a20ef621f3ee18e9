package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/samvad-hq/firetree/internal/logger"
	"github.com/samvad-hq/firetree/pkg/events"
	"github.com/samvad-hq/firetree/pkg/firetree"
	"github.com/samvad-hq/firetree/pkg/profiles"
)

// buildClient assembles a document store client from flags, profiles and
// config, plus the event fanout when a sinks file is configured. The
// returned cleanup releases both.
func buildClient(ctx context.Context) (*firetree.Client, func(), error) {
	baseURI := strings.TrimSpace(flagBaseURI)
	token := strings.TrimSpace(flagToken)
	timeout := time.Duration(flagTimeout) * time.Second
	insecure := flagInsecure

	if flagProfile != "" {
		if err := profiles.LoadProfiles(cfg.ProfilesFile); err != nil {
			return nil, nil, fmt.Errorf("load profiles: %w", err)
		}
		prof, ok := profiles.ProfileByName(flagProfile)
		if !ok {
			return nil, nil, fmt.Errorf("profile %q not found in %s", flagProfile, cfg.ProfilesFile)
		}
		applyProfile(&baseURI, &token, &timeout, &insecure, prof)
	} else if baseURI == "" {
		// No explicit target; fall back to the default profile when the
		// registry is present.
		if err := profiles.LoadProfiles(cfg.ProfilesFile); err == nil {
			if prof, ok := profiles.DefaultProfile(); ok {
				applyProfile(&baseURI, &token, &timeout, &insecure, prof)
			}
		}
	}

	if baseURI == "" {
		baseURI = cfg.BaseURI
	}
	if token == "" {
		token = cfg.AuthToken
	}
	if timeout <= 0 {
		timeout = cfg.Timeout
	}
	insecure = insecure || cfg.InsecureTLS

	if baseURI == "" {
		return nil, nil, errors.New("no base URI configured (use --base-uri, a profile, or FIRETREE_BASE_URI)")
	}

	fanout, err := buildFanout(ctx)
	if err != nil {
		return nil, nil, err
	}

	opts := []firetree.Option{
		firetree.WithLogger(logger.ZapLogger{}),
		firetree.WithTimeout(timeout),
	}
	if token != "" {
		opts = append(opts, firetree.WithToken(token))
	}
	if insecure {
		opts = append(opts, firetree.WithInsecureTLS())
	}
	if fanout != nil && fanout.Size() > 0 {
		opts = append(opts, firetree.WithObserver(events.Observer(fanout, logger.ZapLogger{})))
	}

	client, err := firetree.New(baseURI, opts...)
	if err != nil {
		if fanout != nil {
			_ = fanout.Close()
		}
		return nil, nil, err
	}

	cleanup := func() {
		_ = client.Close()
		if fanout != nil {
			_ = fanout.Close()
		}
	}
	return client, cleanup, nil
}

func applyProfile(baseURI, token *string, timeout *time.Duration, insecure *bool, prof profiles.Profile) {
	if *baseURI == "" {
		*baseURI = prof.BaseURI
	}
	if *token == "" {
		*token = prof.Token()
	}
	if *timeout <= 0 {
		*timeout = prof.Timeout()
	}
	*insecure = *insecure || prof.InsecureTLS
}

// buildFanout loads the sink registry and instantiates the enabled sinks.
// An explicitly flagged sinks file must load; the configured default is
// optional and silently skipped when absent.
func buildFanout(ctx context.Context) (*events.Fanout, error) {
	path := cfg.SinksFile
	required := false
	if flagSinks != "" {
		path = flagSinks
		required = true
	}

	reg, err := events.LoadRegistry(path)
	if err != nil {
		if required {
			return nil, fmt.Errorf("load sinks: %w", err)
		}
		logger.DebugObj("sinks registry not loaded", "sinks", map[string]any{
			"path":  path,
			"error": err.Error(),
		})
		return nil, nil
	}

	sinks, err := events.BuildAll(ctx, events.DefaultRegistry(), reg.Enabled(), logger.ZapLogger{})
	if err != nil {
		return nil, fmt.Errorf("build sinks: %w", err)
	}
	return events.NewFanout(sinks), nil
}

// parseKVPairs splits repeated key=value flag values into a map.
func parseKVPairs(pairs []string, flagName string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --%s value %q (expected key=value)", flagName, pair)
		}
		out[k] = v
	}
	return out, nil
}

// readPayload loads the JSON payload from an argument or, for "-", stdin.
func readPayload(arg string) (json.RawMessage, error) {
	var raw []byte
	if arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		raw = data
	} else {
		raw = []byte(arg)
	}

	raw = bytes.TrimSpace(raw)
	if !json.Valid(raw) {
		return nil, errors.New("payload is not valid JSON")
	}
	return json.RawMessage(raw), nil
}

// printResult writes the response body to stdout and turns served error
// statuses into a command failure.
func printResult(res *firetree.Result, pretty bool) error {
	body := res.Body
	if pretty && len(body) > 0 {
		var buf bytes.Buffer
		if err := json.Indent(&buf, body, "", "  "); err == nil {
			body = buf.Bytes()
		}
	}
	if len(body) > 0 {
		fmt.Println(string(body))
	}
	if res.IsError() {
		return fmt.Errorf("server returned status %d", res.StatusCode)
	}
	return nil
}
