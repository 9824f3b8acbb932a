package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"seaskills/internal/app"
	"seaskills/internal/stub"
	"seaskills/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

const (
	version = "1.0.0"
	siteURL = "https://www.wartimemaritime.org"
)

func newApplication() (*app.Application, error) {
	cfg, err := app.LoadConfig(app.DefaultConfigPath())
	if err != nil {
		return nil, err
	}
	return app.NewApplication(cfg)
}

func generateCompletion(shell string) error {
	switch shell {
	case "bash":
		fmt.Println("# bash completion for wva")
		fmt.Println("_wva_completions() {")
		fmt.Println("    local cur")
		fmt.Println("    COMPREPLY=()")
		fmt.Println("    cur=\"${COMP_WORDS[COMP_CWORD]}\"")
		fmt.Println("    opts=\"login logout news status stub completion help version --help\"")
		fmt.Println("    if [[ $COMP_CWORD -eq 1 ]]; then")
		fmt.Println("        COMPREPLY=( $(compgen -W \"${opts}\" -- \"${cur}\") )")
		fmt.Println("    fi")
		fmt.Println("    return 0")
		fmt.Println("}")
		fmt.Println("complete -F _wva_completions wva")
	case "zsh":
		fmt.Println("# zsh completion for wva")
		fmt.Println("compdef _wva wva")
		fmt.Println("_wva() {")
		fmt.Println("    _arguments -C \\")
		fmt.Println("        '(-h --help)'{-h,--help}'[show help]' \\")
		fmt.Println("        '(-v --version)'{-v,--version}'[print version]' \\")
		fmt.Println("        '1:command:(login logout news status stub completion)'")
		fmt.Println("}")
	case "fish":
		fmt.Println("# fish completion for wva")
		fmt.Println("complete -c wva -f -a 'login logout news status stub completion'")
		fmt.Println("complete -c wva -s h -l help -d 'Show help'")
		fmt.Println("complete -c wva -s v -l version -d 'Print version'")
	default:
		return fmt.Errorf("unsupported shell: %s", shell)
	}
	return nil
}

func promptCredentials() (string, string, error) {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Email: ")
	email, err := reader.ReadString('\n')
	if err != nil {
		return "", "", fmt.Errorf("error reading email: %w", err)
	}
	fmt.Print("Password: ")
	password, err := reader.ReadString('\n')
	if err != nil {
		return "", "", fmt.Errorf("error reading password: %w", err)
	}
	return strings.TrimSpace(email), strings.TrimRight(password, "\r\n"), nil
}

func main() {
	root := &cobra.Command{
		Use:     "wva",
		Short:   "WVA Chronicle - Sea Skills member terminal",
		Long:    "WVA Chronicle is the Wartime Vessels Association member terminal for the Sea Skills programme.\n\nUse without arguments for the full-screen terminal, or with subcommands for one-shot queries.\n\nFor more information, visit: " + siteURL,
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Printf("WVA Chronicle v%s\n", version)
				fmt.Printf("Site: %s\n", siteURL)
				return nil
			}

			application, err := newApplication()
			if err != nil {
				return err
			}
			tui.Version = version

			p := tea.NewProgram(tui.NewModel(application), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return err
			}
			return nil
		},
	}

	root.Flags().BoolP("version", "v", false, "Print version information")

	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApplication()
			if err != nil {
				return err
			}

			email := loginEmail
			password := loginPassword
			if email == "" || password == "" {
				email, password, err = promptCredentials()
				if err != nil {
					return err
				}
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			session, err := application.Auth.Login(ctx, email, password)
			if err != nil {
				return err
			}
			fmt.Printf("Signed in as %s <%s>\n", session.User.Name, session.User.Email)
			return nil
		},
	}
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Member email")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Member password")
	root.AddCommand(loginCmd)

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApplication()
			if err != nil {
				return err
			}
			if err := application.Auth.Logout(); err != nil {
				return err
			}
			fmt.Println("Signed out.")
			return nil
		},
	}
	root.AddCommand(logoutCmd)

	newsCmd := &cobra.Command{
		Use:   "news",
		Short: "List the latest Chronicle stories",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApplication()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			stories, meta, err := application.Client.FetchNewsStories(ctx, app.FetchNewsStoriesInput{
				Category: newsCategory,
				Page:     newsPage,
				PerPage:  application.Config.PageSize,
			})
			if err != nil {
				return err
			}

			for _, story := range stories {
				label := app.NormalizeNewsCategory(story.Category).Label
				if label == "" {
					label = "-"
				}
				fmt.Printf("%-24s %s\n", label, story.Title)
			}
			fmt.Printf("\npage %d of %d (%d stories)\n", meta.CurrentPage, meta.LastPage, meta.Total)
			return nil
		},
	}
	newsCmd.Flags().StringVarP(&newsCategory, "category", "c", "", "Filter by category slug")
	newsCmd.Flags().IntVarP(&newsPage, "page", "p", 1, "Page to fetch")
	root.AddCommand(newsCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show your Sea Skills progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApplication()
			if err != nil {
				return err
			}
			application.Auth.Start()
			session := application.Auth.Session()
			if session == nil {
				return fmt.Errorf("no stored session, run 'wva login' first")
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			resp, err := application.Client.FetchSeaSkillsStatus(ctx, session.User.ID, session.Token)
			if err != nil {
				return err
			}

			totals := app.SummarizeActivities(resp.Activities)
			fmt.Printf("%s: %d finished, %d pending, %d minutes logged\n\n",
				resp.User.Name, totals.Finished, totals.Pending, totals.Minutes)
			for _, act := range resp.Activities {
				marker := " "
				if act.Status == app.ActivityFinished {
					marker = "x"
				}
				fmt.Printf("[%s] Week %-3d %s\n", marker, act.WeekNumber, act.Title)
			}
			return nil
		},
	}
	root.AddCommand(statusCmd)

	stubCmd := &cobra.Command{
		Use:   "stub",
		Short: "Run the local demo API server",
		Long:  "Run a local HTTP server implementing the Chronicle API with seeded demo data.\n\nSign in against it with:\n  - email: " + stub.DemoEmail + "\n  - password: " + stub.DemoPassword,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sigChan
				cancel()
			}()

			fmt.Printf("Chronicle stub API listening on %s\n", stubAddr)
			fmt.Printf("Point the client at it with WVA_API_BASE_URL=http://%s/api\n", stubAddr)
			return stub.NewServer().ListenAndServe(ctx, stubAddr)
		},
	}
	stubCmd.Flags().StringVarP(&stubAddr, "addr", "a", "127.0.0.1:8080", "Listen address")
	root.AddCommand(stubCmd)

	completionCmd := &cobra.Command{
		Use:   "completion [shell]",
		Short: "Generate shell completion",
		Long:  "Generate shell completion script for wva.\n\nExamples:\n  - wva completion bash >> ~/.bashrc\n  - wva completion zsh > ~/.zsh/completion/_wva\n  - wva completion fish > ~/.config/fish/completions/wva.fish",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return generateCompletion(args[0])
		},
	}
	root.AddCommand(completionCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	loginEmail    string
	loginPassword string
	newsCategory  string
	newsPage      int
	stubAddr      string
)
