package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docbind/internal/config"
	"git.home.luguber.info/inful/docbind/internal/foundation/errors"
	"git.home.luguber.info/inful/docbind/internal/metrics"
)

const finishPage = `<refentry><refnamediv><refpurpose>block until all
  commands complete</refpurpose></refnamediv>
<refsect1 id="parameters"><variablelist>
<varlistentry><term><parameter>mode</parameter></term><listitem><para>one of <constant>GL_DONT_CARE</constant></para></listitem></varlistentry>
</variablelist></refsect1></refentry>`

func fixture(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	docsDir := filepath.Join(root, "docs")
	require.NoError(t, os.MkdirAll(docsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(docsDir, "glFinish.xml"), []byte(finishPage), 0o600))

	fnPath := filepath.Join(root, "functions.yaml")
	require.NoError(t, os.WriteFile(fnPath, []byte("- name: Finish\n  parameters: [mode]\n- name: Flush\n  parameters: [a, b]\n"), 0o600))

	return &config.Config{Profiles: []config.Profile{{
		Name:          "gl",
		Functions:     fnPath,
		Documentation: config.DocumentationConfig{Primary: docsDir, FilePrefix: "gl"},
		Enums:         config.EnumConfig{ConstantPrefix: "GL_"},
		Compatibility: config.CompatibilityConfig{RewriteConstants: true},
	}}}
}

func TestRun(t *testing.T) {
	cfg := fixture(t)
	reg := prometheus.NewRegistry()
	rec := metrics.NewPrometheusRecorder(reg)

	report, err := Run(context.Background(), cfg, Options{RunID: "run-1", Recorder: rec})
	require.NoError(t, err)

	assert.Equal(t, "run-1", report.RunID)
	require.Len(t, report.Profiles, 1)
	pr := report.Profiles[0]
	require.Len(t, pr.Functions, 2)

	finish := pr.Functions[0]
	assert.Equal(t, "Finish", finish.Name)
	assert.Equal(t, "Block until all commands complete", finish.Summary)
	require.Len(t, finish.Parameters, 1)
	assert.Equal(t, "one of DontCare", finish.Parameters[0].Description)

	flush := pr.Functions[1]
	assert.Empty(t, flush.Summary)
	assert.Len(t, flush.Parameters, 2)

	assert.Equal(t, 1, pr.Stats.Resolved)
	assert.Equal(t, 1, pr.Stats.Missing)
	series, err := testutil.GatherAndCount(reg, "docbind_lookups_total")
	require.NoError(t, err)
	assert.Equal(t, 2, series)
}

func TestRunGeneratesRunID(t *testing.T) {
	report, err := Run(context.Background(), fixture(t), Options{})
	require.NoError(t, err)
	assert.Len(t, report.RunID, 36)
}

func TestRunUnknownProfile(t *testing.T) {
	_, err := Run(context.Background(), fixture(t), Options{Profile: "vulkan"})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, fixture(t), Options{})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryRuntime))
}

func TestRunMissingDocumentationDirectory(t *testing.T) {
	cfg := fixture(t)
	cfg.Profiles[0].Documentation.Primary = filepath.Join(t.TempDir(), "absent")
	_, err := Run(context.Background(), cfg, Options{})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryDocs))
}

func TestReportEncode(t *testing.T) {
	report, err := Run(context.Background(), fixture(t), Options{RunID: "r"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.Encode(&buf, FormatJSON))
	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, report.Profiles[0].Functions, decoded.Profiles[0].Functions)

	buf.Reset()
	require.NoError(t, report.Encode(&buf, FormatYAML))
	assert.True(t, strings.HasPrefix(buf.String(), "run_id: r\n"))
	var fromYAML Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &fromYAML))
	assert.Equal(t, "Finish", fromYAML.Profiles[0].Functions[0].Name)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xml")
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}
