/*
Copyright © 2025 changheonshin
*/
package cmd

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devlikebear/parafile/internal/rules"
)

func TestRulesInitAndList(t *testing.T) {
	fs := useMemFs(t)

	require.NoError(t, rulesInitCmd.RunE(rulesInitCmd, nil))

	exists, _ := afero.Exists(fs, "/home/user/.parafile/rules.yml")
	assert.True(t, exists)

	assert.NoError(t, rulesListCmd.RunE(rulesListCmd, nil))
	assert.Error(t, rulesInitCmd.RunE(rulesInitCmd, nil), "init refuses to overwrite")
}

func TestRulesAddEnableDisable(t *testing.T) {
	useMemFs(t)

	ruleName = "pdfs-to-documents"
	ruleType = "extension"
	ruleExtensions = []string{"pdf"}
	ruleAction = "by_type"
	ruleTargetDir = "Documents"
	defer func() {
		ruleName, ruleType, ruleAction, ruleTargetDir = "", "extension", "by_type", ""
		ruleExtensions = nil
	}()

	require.NoError(t, rulesAddCmd.RunE(rulesAddCmd, nil))

	m, err := newRuleManager()
	require.NoError(t, err)

	enabled, err := m.Enabled()
	require.NoError(t, err)
	require.Len(t, enabled, 1)

	require.NoError(t, rulesDisableCmd.RunE(rulesDisableCmd, []string{"pdfs-to-documents"}))
	enabled, err = m.Enabled()
	require.NoError(t, err)
	assert.Empty(t, enabled)

	require.NoError(t, rulesEnableCmd.RunE(rulesEnableCmd, []string{"pdfs-to-documents"}))
	enabled, err = m.Enabled()
	require.NoError(t, err)
	assert.Len(t, enabled, 1)
}

func TestRulesAdd_RejectsBadAction(t *testing.T) {
	useMemFs(t)

	ruleName = "bad"
	ruleType = "extension"
	ruleExtensions = []string{"pdf"}
	ruleAction = "by_size"
	ruleTargetDir = "Somewhere"
	defer func() {
		ruleName, ruleType, ruleAction, ruleTargetDir = "", "extension", "by_type", ""
		ruleExtensions = nil
	}()

	err := rulesAddCmd.RunE(rulesAddCmd, nil)
	assert.Error(t, err)
}

func TestDescribeCondition(t *testing.T) {
	assert.Equal(t, "ext:pdf,docx", describeCondition(rules.Condition{Type: rules.ConditionExtension, Extensions: []string{"pdf", "docx"}}))
	assert.Equal(t, "mime:image/", describeCondition(rules.Condition{Type: rules.ConditionMimePrefix, Prefix: "image/"}))
	assert.Equal(t, "name:\\.bak$", describeCondition(rules.Condition{Type: rules.ConditionNamePattern, Pattern: `\.bak$`}))
}

func TestDescribeAction(t *testing.T) {
	assert.Equal(t, "by type", describeAction(rules.ActionByType))
	assert.Equal(t, "by date", describeAction(rules.ActionByDate))
	assert.Equal(t, "by language", describeAction(rules.ActionByLanguage))
	assert.Equal(t, "by type", describeAction(""))
}
