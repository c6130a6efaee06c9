// Package main provides the terminal drill client.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"trireme_flashcards/internal/model"
	"trireme_flashcards/internal/tui"
)

const defaultServerURL = "http://localhost:8080"

var (
	serverURL string
	userName  string
	password  string
	token     string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "drill-tui <deck>",
		Short:         "Terminal flashcard drill client",
		Long:          "Runs a Leitner drill against a flashcard server. <deck> is a deck name or numeric ID.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runDrillCmd,
	}

	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultServerURL, "server base URL")
	rootCmd.PersistentFlags().StringVar(&userName, "user", "", "user name (or DRILL_USER)")
	rootCmd.PersistentFlags().StringVar(&password, "password", "", "password (or DRILL_PASSWORD)")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "access token, skips login (or DRILL_TOKEN)")

	rootCmd.AddCommand(newDecksCmd())

	return rootCmd
}

// newAuthedClient はトークンまたはユーザー名・パスワードで認証済みのクライアントを返します。
func newAuthedClient(ctx context.Context) (*tui.Client, error) {
	if token == "" {
		token = os.Getenv("DRILL_TOKEN")
	}
	if token != "" {
		return tui.NewClient(serverURL, token), nil
	}

	if userName == "" {
		userName = os.Getenv("DRILL_USER")
	}
	if password == "" {
		password = os.Getenv("DRILL_PASSWORD")
	}
	if userName == "" || password == "" {
		return nil, fmt.Errorf("credentials required: pass --user/--password, --token, or set DRILL_USER/DRILL_PASSWORD")
	}

	client := tui.NewClient(serverURL, "")
	if err := client.Login(ctx, userName, password); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	return client, nil
}

// resolveDeck は名前または数値IDでデッキを特定します。名前は大文字小文字を区別しない。
func resolveDeck(ctx context.Context, client *tui.Client, arg string) (*model.DeckResponse, error) {
	decks, err := client.ListDecks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}

	if id, err := strconv.ParseUint(arg, 10, 32); err == nil {
		for i := range decks {
			if decks[i].DeckID == uint(id) {
				return &decks[i], nil
			}
		}
	}
	for i := range decks {
		if strings.EqualFold(decks[i].Name, arg) {
			return &decks[i], nil
		}
	}
	return nil, fmt.Errorf("deck %q not found (run: drill-tui decks)", arg)
}

func runDrillCmd(_ *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := newAuthedClient(ctx)
	if err != nil {
		return err
	}

	deck, err := resolveDeck(ctx, client, args[0])
	if err != nil {
		return err
	}

	started, err := client.StartDrill(ctx, deck.DeckID)
	if err != nil {
		return fmt.Errorf("failed to start drill: %w", err)
	}
	if started.NothingDue {
		fmt.Printf("Nothing to review in %q today.\n", deck.Name)
		return nil
	}

	drillModel := tui.NewModel(client, *started.DrillID, deck.Name, started.DueCount)
	program := tea.NewProgram(drillModel, tea.WithAltScreen())
	finalModel, err := program.Run()
	if err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if m, ok := finalModel.(*tui.Model); ok {
		if err := m.Err(); err != nil {
			return fmt.Errorf("drill aborted: %w", err)
		}
	}
	return nil
}

func newDecksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decks",
		Short: "List decks with card counts",
		Args:  cobra.NoArgs,
		RunE:  runDecksCmd,
	}
}

func runDecksCmd(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := newAuthedClient(ctx)
	if err != nil {
		return err
	}
	decks, err := client.ListDecks(ctx)
	if err != nil {
		return fmt.Errorf("failed to list decks: %w", err)
	}
	if len(decks) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No decks yet.")
		return nil
	}
	for _, d := range decks {
		fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t(%d cards)\n", d.DeckID, d.Name, d.CardCount)
	}
	return nil
}
