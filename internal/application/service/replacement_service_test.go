package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/haxorport/postman-rewrite/internal/domain/model"
	domainservice "github.com/haxorport/postman-rewrite/internal/domain/service"
	"github.com/haxorport/postman-rewrite/internal/infrastructure/collection"
	"github.com/haxorport/postman-rewrite/internal/infrastructure/logger"
	"github.com/haxorport/postman-rewrite/internal/infrastructure/rules"
)

const shopCollection = `{
  "info": {"name": "shop"},
  "item": [
    {"name": "products", "item": [
      {"name": "GET /api/products/1", "request": {
        "method": "GET",
        "header": [{"key": "authorization", "value": "Bearer local"}],
        "url": {"raw": "http://localhost:8080/api/products/1", "host": ["localhost"], "port": "8080", "path": ["api", "products", "1"]}
      }}
    ]}
  ]
}`

const shopRules = `headers:
  - name: Authorization
    newValue: "Bearer {{token}}"
host:
  before: "localhost:8080"
  after: "{{host}}"
pathPrefix:
  before: "api/"
  after: ""
pathReplacements:
  - before: "1"
    after: ":productId"
`

type recordingHistory struct {
	records []*model.RunRecord
}

func (h *recordingHistory) Create(_ context.Context, record *model.RunRecord) error {
	h.records = append(h.records, record)
	return nil
}

func (h *recordingHistory) List(_ context.Context, limit int) ([]*model.RunRecord, error) {
	if limit > 0 && limit < len(h.records) {
		return h.records[:limit], nil
	}
	return h.records, nil
}

func (h *recordingHistory) Close() error { return nil }

type fixture struct {
	dir     string
	input   string
	rules   string
	history *recordingHistory
	service *ReplacementService
	logs    *bytes.Buffer
}

func newFixture(t *testing.T, collectionJSON string) *fixture {
	dir := t.TempDir()
	f := &fixture{
		dir:     dir,
		input:   filepath.Join(dir, "shop.postman_collection.json"),
		rules:   filepath.Join(dir, "rules.yaml"),
		history: &recordingHistory{},
		logs:    &bytes.Buffer{},
	}
	require.NoError(t, os.WriteFile(f.input, []byte(collectionJSON), 0644))
	require.NoError(t, os.WriteFile(f.rules, []byte(shopRules), 0644))

	f.service = NewReplacementService(
		collection.NewCollectionRepository(),
		rules.NewRulesRepository(),
		f.history,
		domainservice.NewReplacementEngine(),
		model.NewConfig(),
		logger.NewLogger(f.logs, "debug"),
	)
	return f
}

func TestRunRewritesCollection(t *testing.T) {
	f := newFixture(t, shopCollection)
	output := filepath.Join(f.dir, "out.json")

	record, err := f.service.Run(context.Background(), RunOptions{
		CollectionPath: f.input,
		OutputPath:     output,
		RulesFiles:     []string{f.rules},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	req := gjson.GetBytes(data, "item.0.item.0")
	assert.Equal(t, "GET /products/:productId", req.Get("name").String())
	assert.Equal(t, "Bearer {{token}}", req.Get("request.header.0.value").String())
	assert.Equal(t, "http://{{host}}/products/:productId", req.Get("request.url.raw").String())
	assert.Equal(t, "8080", req.Get("request.url.port").String())
	var path []string
	for _, p := range req.Get("request.url.path").Array() {
		path = append(path, p.String())
	}
	assert.Equal(t, []string{"products", ":productId"}, path)

	assert.Equal(t, model.RunStatusOK, record.Status)
	assert.Equal(t, "shop", record.Collection)
	assert.Equal(t, 1, record.Requests)
	assert.Equal(t, []string{model.PassHeaders, model.PassHost, model.PassPathPrefix, model.PassPathReplacements}, record.Passes)
	require.Len(t, f.history.records, 1)
	assert.Same(t, record, f.history.records[0])
	assert.Contains(t, f.logs.String(), "run="+record.ID)

	// the input is left alone when an output path is given
	original, err := os.ReadFile(f.input)
	require.NoError(t, err)
	assert.Equal(t, shopCollection, string(original))
}

func TestRunInPlaceByDefault(t *testing.T) {
	f := newFixture(t, shopCollection)

	record, err := f.service.Run(context.Background(), RunOptions{CollectionPath: f.input, RulesFiles: []string{f.rules}})
	require.NoError(t, err)
	assert.Equal(t, f.input, record.OutputPath)

	data, err := os.ReadFile(f.input)
	require.NoError(t, err)
	assert.Equal(t, "GET /products/:productId", gjson.GetBytes(data, "item.0.item.0.name").String())
}

func TestRunDryRunWritesNothing(t *testing.T) {
	f := newFixture(t, shopCollection)

	record, err := f.service.Run(context.Background(), RunOptions{CollectionPath: f.input, RulesFiles: []string{f.rules}, DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusDryRun, record.Status)

	data, err := os.ReadFile(f.input)
	require.NoError(t, err)
	assert.Equal(t, shopCollection, string(data))
}

func TestRunWithoutRulesLeavesCollectionUnchanged(t *testing.T) {
	f := newFixture(t, shopCollection)
	output := filepath.Join(f.dir, "out.json")

	record, err := f.service.Run(context.Background(), RunOptions{CollectionPath: f.input, OutputPath: output})
	require.NoError(t, err)
	assert.Empty(t, record.Passes)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, shopCollection, string(data))
}

func TestRunFailureIsRecordedAndNothingWritten(t *testing.T) {
	broken := `{"info": {"name": "broken"}, "item": [{"name": "r", "request": {"header": []}}]}`
	f := newFixture(t, broken)
	output := filepath.Join(f.dir, "out.json")

	record, err := f.service.Run(context.Background(), RunOptions{CollectionPath: f.input, OutputPath: output, RulesFiles: []string{f.rules}})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainservice.ErrMalformedRequest)
	assert.Equal(t, model.RunStatusFailed, record.Status)
	assert.NotEmpty(t, record.Error)
	require.Len(t, f.history.records, 1)

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunMissingRulesFile(t *testing.T) {
	f := newFixture(t, shopCollection)

	record, err := f.service.Run(context.Background(), RunOptions{
		CollectionPath: f.input,
		RulesFiles:     []string{filepath.Join(f.dir, "missing.yaml")},
	})
	require.Error(t, err)
	assert.Equal(t, model.RunStatusFailed, record.Status)
	assert.Empty(t, record.Collection)
}

func TestHistory(t *testing.T) {
	f := newFixture(t, shopCollection)
	for i := 0; i < 3; i++ {
		_, err := f.service.Run(context.Background(), RunOptions{CollectionPath: f.input, DryRun: true})
		require.NoError(t, err)
	}

	records, err := f.service.History(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
