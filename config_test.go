package filings_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	filings "github.com/RxDataLab/go-filings"
	"github.com/stretchr/testify/require"
)

func clearConfigEnv(t *testing.T) {
	for _, key := range []string{"LOG_LEVEL", "FETCH_TIMEOUT", "PRIOR_FETCH_TIMEOUT", "SEC_REQUESTS_PER_SECOND", "CONSENSUS_FILE"} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv(filings.SecEmailEnvVar, testEmail)

	cfg, err := filings.LoadConfig()
	require.NoError(t, err)

	require.Equal(t, testEmail, cfg.SecEmail)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, filings.DefaultFetchTimeout, cfg.FetchTimeout)
	require.Equal(t, filings.DefaultPriorFetchTimeout, cfg.PriorFetchTimeout)
	require.Equal(t, float64(filings.DefaultRequestsPerSecond), cfg.RequestsPerSecond)
	require.Empty(t, cfg.ConsensusFile)
}

func TestLoadConfigOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv(filings.SecEmailEnvVar, testEmail)
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("FETCH_TIMEOUT", "45s")
	t.Setenv("PRIOR_FETCH_TIMEOUT", "5s")
	t.Setenv("SEC_REQUESTS_PER_SECOND", "4.5")
	t.Setenv("CONSENSUS_FILE", "testdata/filings/consensus.yaml")

	cfg, err := filings.LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, 45*time.Second, cfg.FetchTimeout)
	require.Equal(t, 5*time.Second, cfg.PriorFetchTimeout)
	require.Equal(t, 4.5, cfg.RequestsPerSecond)
	require.Equal(t, "testdata/filings/consensus.yaml", cfg.ConsensusFile)

	client, err := filings.NewClientFromConfig(cfg, nil)
	require.NoError(t, err)
	require.NotNil(t, client)
}

func TestLoadConfigBadDurationFallsBack(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv(filings.SecEmailEnvVar, testEmail)
	t.Setenv("FETCH_TIMEOUT", "soon")
	t.Setenv("SEC_REQUESTS_PER_SECOND", "fast")

	cfg, err := filings.LoadConfig()
	require.NoError(t, err)
	require.Equal(t, filings.DefaultFetchTimeout, cfg.FetchTimeout)
	require.Equal(t, float64(filings.DefaultRequestsPerSecond), cfg.RequestsPerSecond)
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"placeholder email", map[string]string{filings.SecEmailEnvVar: "me@example.com"}},
		{"unknown log level", map[string]string{filings.SecEmailEnvVar: testEmail, "LOG_LEVEL": "loud"}},
		{"rate above SEC limit", map[string]string{filings.SecEmailEnvVar: testEmail, "SEC_REQUESTS_PER_SECOND": "20"}},
		{"zero timeout", map[string]string{filings.SecEmailEnvVar: testEmail, "FETCH_TIMEOUT": "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := filings.LoadConfig()
			require.Error(t, err)
		})
	}
}

func TestLoadConfigWithoutEmail(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv(filings.SecEmailEnvVar, "")

	cfg, err := filings.LoadConfig()
	require.NoError(t, err)
	require.Empty(t, cfg.SecEmail)

	_, err = filings.NewClientFromConfig(cfg, nil)
	require.ErrorContains(t, err, filings.SecEmailEnvVar)
}

func TestConfigValidateAfterOverride(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv(filings.SecEmailEnvVar, "")

	cfg := filings.ReadConfig()
	cfg.SecEmail = testEmail
	cfg.LogLevel = " WARN "
	require.NoError(t, cfg.Validate())
	require.Equal(t, "warn", cfg.LogLevel)

	cfg.SecEmail = "not-an-address"
	require.Error(t, cfg.Validate())
}

func TestNewClientFromConfigPriorTimeout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/current.htm", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("current"))
	})
	mux.HandleFunc("/slow.htm", func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	target, err := url.Parse(srv.URL)
	require.NoError(t, err)

	cfg := &filings.Config{
		SecEmail:          testEmail,
		LogLevel:          "info",
		FetchTimeout:      5 * time.Second,
		PriorFetchTimeout: 50 * time.Millisecond,
		RequestsPerSecond: 10,
	}
	require.NoError(t, cfg.Validate())

	client, err := filings.NewClientFromConfig(cfg, nil,
		filings.WithHTTPClient(&http.Client{Transport: rewriteTransport{target: target}}))
	require.NoError(t, err)

	start := time.Now()
	pair, err := client.FetchPair(context.Background(), "https://www.sec.gov/current.htm", "https://www.sec.gov/slow.htm", 0)
	require.NoError(t, err)
	require.Equal(t, "current", string(pair.Current))
	require.Error(t, pair.PriorErr)
	require.Less(t, time.Since(start), 5*time.Second)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := filings.NewLogger("warn", &buf)

	logger.Info("hidden")
	logger.Warn("shown", "ticker", "ACME")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "msg=shown")
	require.Contains(t, out, "component=go-filings")
	require.Contains(t, out, "ticker=ACME")
}

func TestParseLogLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, filings.ParseLogLevel("debug"))
	require.Equal(t, slog.LevelWarn, filings.ParseLogLevel(" WARNING "))
	require.Equal(t, slog.LevelError, filings.ParseLogLevel("error"))
	require.Equal(t, slog.LevelInfo, filings.ParseLogLevel(""))
	require.Equal(t, slog.LevelInfo, filings.ParseLogLevel("verbose"))
}
