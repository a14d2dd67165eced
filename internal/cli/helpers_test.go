package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/valter-silva-au/mdboard/internal/core"
	"github.com/valter-silva-au/mdboard/pkg/models"
)

// stubBoard implements core.BoardClient in memory.
type stubBoard struct {
	lists    []models.BoardList
	listsErr error
	failCard string
	created  []string
	cards    []string
}

func (b *stubBoard) GetOpenLists(_ context.Context) ([]models.BoardList, error) {
	return b.lists, b.listsErr
}

func (b *stubBoard) CreateList(_ context.Context, name string) (*models.BoardList, error) {
	b.created = append(b.created, name)
	return &models.BoardList{ID: fmt.Sprintf("list-%d", len(b.created)), Name: name}, nil
}

func (b *stubBoard) CreateCard(_ context.Context, listID, name, _ string) (*models.Card, error) {
	b.cards = append(b.cards, listID+":"+name)
	if name == b.failCard {
		return nil, errors.New("trello API 400 Bad Request: invalid value")
	}
	return &models.Card{ID: fmt.Sprintf("card-%d", len(b.cards)), Name: name, IDList: listID}, nil
}

func (b *stubBoard) calls() int {
	return len(b.created) + len(b.cards)
}

var testEnvVars = []string{
	"TRELLO_KEY", "TRELLO_TOKEN", "TRELLO_BOARD_ID", "TRELLO_LIST_ID",
	"TRELLO_LIST_NAME", "TRELLO_API_URL", "MDBOARD_FILE",
	"EXCLUDE_COMPLETED", "INCLUDE_TOPLEVEL", "GROUP_BY",
}

const testConfig = `trello:
  key: k
  token: t
  board_id: b
export:
  single_delay: 0s
  grouped_delay: 0s
`

// setupWorkspace points ConfigMgr at a temp dir holding config and, when
// doc is non-empty, docs/SYSTEM_ANALYSIS.md.
func setupWorkspace(t *testing.T, config, doc string) string {
	t.Helper()
	for _, env := range testEnvVars {
		t.Setenv(env, "")
	}

	dir := t.TempDir()
	if config != "" {
		if err := os.WriteFile(filepath.Join(dir, ".mdboard.yaml"), []byte(config), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if doc != "" {
		if err := os.MkdirAll(filepath.Join(dir, "docs"), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, core.DefaultSourceFile), []byte(doc), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	origMgr := ConfigMgr
	t.Cleanup(func() { ConfigMgr = origMgr })
	ConfigMgr = core.NewConfigurationManager(dir)
	return dir
}

// useBoard routes NewBoardClient to board for the duration of the test.
func useBoard(t *testing.T, board core.BoardClient) {
	t.Helper()
	orig := NewBoardClient
	t.Cleanup(func() { NewBoardClient = orig })
	NewBoardClient = func(models.TrelloConfig) core.BoardClient { return board }
}

// runCLI executes the root command with args and returns its stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// resetFlags restores every flag to its default so state does not leak
// between executions of the shared command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
