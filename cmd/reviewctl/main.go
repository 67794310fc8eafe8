package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/The-Unpaid-Developers/solution-review-service/internal/client"
	"github.com/The-Unpaid-Developers/solution-review-service/internal/model"
	"github.com/The-Unpaid-Developers/solution-review-service/internal/store"
	"github.com/The-Unpaid-Developers/solution-review-service/internal/workflow"
)

var (
	serverURL   string
	sessionFile string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "reviewctl: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviewctl",
		Short: "Solution review CLI",
		Long: `reviewctl authors and governs solution review documents against a running
backend: listing and inspecting reviews, walking them through their
lifecycle, and checking submission readiness.`,
		SilenceUsage: true,
	}
	defaultServer := os.Getenv("REVIEW_SERVER")
	if defaultServer == "" {
		defaultServer = "http://localhost:8080"
	}
	cmd.PersistentFlags().StringVarP(&serverURL, "server", "s", defaultServer, "Backend base URL")
	cmd.PersistentFlags().StringVar(&sessionFile, "session-file", "", "Session file path (defaults under the user config dir)")
	cmd.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newSystemsCmd(),
		newReviewsCmd(),
		newTransitionCmd(),
		newSubmitCmd(),
	)
	return cmd
}

func newClient() (*client.Client, *client.SessionStore, error) {
	session, err := client.NewSessionStore(sessionFile)
	if err != nil {
		return nil, nil, err
	}
	return client.New(serverURL, client.WithSessionStore(session)), session, nil
}

func newLoginCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Authenticate and store the session token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, _, err := newClient()
			if err != nil {
				return err
			}
			if _, err := api.Login(cmd.Context(), args[0], password); err != nil {
				return err
			}
			fmt.Printf("logged in as %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (or set REVIEW_PASSWORD)")
	if env := os.Getenv("REVIEW_PASSWORD"); env != "" {
		password = env
	}
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := client.NewSessionStore(sessionFile)
			if err != nil {
				return err
			}
			return session.Clear()
		},
	}
}

func newSystemsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "systems",
		Short: "List registered systems",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, _, err := newClient()
			if err != nil {
				return err
			}
			systems, err := api.GetSystems(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tNAME\tOWNER")
			for _, sys := range systems {
				fmt.Fprintf(w, "%s\t%s\t%s\n", sys.SystemCode, sys.Name, sys.OwnerTeam)
			}
			return w.Flush()
		},
	}
}

func newReviewsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviews",
		Short: "Manage solution reviews",
	}
	cmd.AddCommand(
		newReviewsListCmd(),
		newReviewsShowCmd(),
		newReviewsCreateCmd(),
		newReviewsDeleteCmd(),
	)
	return cmd
}

func newReviewsListCmd() *cobra.Command {
	var systemCode, state, search string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reviews, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, _, err := newClient()
			if err != nil {
				return err
			}
			st := store.New(api, nil)
			defer st.Close()

			st.SetFilter(store.FilterPatch{
				SystemCode:    &systemCode,
				DocumentState: &state,
				Search:        &search,
			})
			st.LoadReviews(cmd.Context())
			if msg := st.Err(); msg != "" {
				return fmt.Errorf("%s", msg)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSYSTEM\tSOLUTION\tSTATE\tMODIFIED BY")
			for _, r := range st.FilteredReviews() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					r.ID, r.SystemCode, r.Overview.SolutionName,
					workflow.NormalizeState(r.DocumentState), r.LastModifiedBy)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&systemCode, "system", "", "Filter by system code")
	cmd.Flags().StringVar(&state, "state", "", "Filter by document state")
	cmd.Flags().StringVar(&search, "search", "", "Filter by solution name")
	return cmd
}

func newReviewsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one review with its section counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, _, err := newClient()
			if err != nil {
				return err
			}
			review, err := api.GetSolutionReviewByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if review == nil {
				return fmt.Errorf("review %s not found", args[0])
			}
			printReview(review)
			return nil
		},
	}
}

func newReviewsCreateCmd() *cobra.Command {
	var systemCode, name, reviewType, businessUnit string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a review in DRAFT state",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, _, err := newClient()
			if err != nil {
				return err
			}
			review, err := api.CreateSolutionReview(cmd.Context(), store.CreateReviewInput{
				SystemCode: systemCode,
				Overview: model.SolutionOverview{
					SolutionName: name,
					ReviewType:   reviewType,
					BusinessUnit: businessUnit,
				},
			})
			if err != nil {
				return err
			}
			fmt.Printf("created review %s in %s\n", review.ID, review.DocumentState)
			return nil
		},
	}
	cmd.Flags().StringVar(&systemCode, "system", "", "System code (required)")
	cmd.Flags().StringVar(&name, "name", "", "Solution name (required)")
	cmd.Flags().StringVar(&reviewType, "type", "NEW_SOLUTION", "Review type: NEW_SOLUTION, MAJOR_CHANGE or PERIODIC")
	cmd.Flags().StringVar(&businessUnit, "business-unit", "", "Business unit (required)")
	_ = cmd.MarkFlagRequired("system")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("business-unit")
	return cmd
}

func newReviewsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, _, err := newClient()
			if err != nil {
				return err
			}
			ok, err := api.DeleteSolutionReview(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("review %s not found", args[0])
			}
			fmt.Println("deleted")
			return nil
		},
	}
}

func newTransitionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transition <id> <name>",
		Short: "Enact a lifecycle transition on a review",
		Long: `Enacts one of: SUBMIT, REMOVE_SUBMISSION, APPROVE, UNAPPROVE,
ACTIVATE, MARK_OUTDATED, RESET_CURRENT, REJECT, REOPEN. The pair is
validated against the current document state before the request is sent.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			transition, err := workflow.ParseTransition(strings.ToUpper(args[1]))
			if err != nil {
				return err
			}
			api, _, err := newClient()
			if err != nil {
				return err
			}
			st := store.New(api, nil)
			defer st.Close()

			st.LoadReview(cmd.Context(), args[0])
			if msg := st.Err(); msg != "" {
				return fmt.Errorf("%s", msg)
			}
			review, err := st.TransitionState(cmd.Context(), args[0], transition)
			if err != nil {
				return err
			}
			fmt.Printf("review %s is now %s\n", review.ID, review.DocumentState)
			return nil
		},
	}
}

func newSubmitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit <id>",
		Short: "Check completeness and submit a draft review",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one review id")
			}
			api, _, err := newClient()
			if err != nil {
				return err
			}
			st := store.New(api, nil)
			defer st.Close()

			st.LoadReview(cmd.Context(), args[0])
			if msg := st.Err(); msg != "" {
				return fmt.Errorf("%s", msg)
			}

			sections, ok := st.Completeness(args[0])
			if !ok {
				return fmt.Errorf("review %s not loaded", args[0])
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, section := range model.WizardSections {
				mark := "MISSING"
				if sections[section] {
					mark = "ok"
				}
				fmt.Fprintf(w, "%s\t%s\n", section, mark)
			}
			_ = w.Flush()

			if !st.CanSubmit(args[0]) {
				return fmt.Errorf("review is not ready to submit")
			}
			review, err := st.TransitionState(cmd.Context(), args[0], workflow.TransitionSubmit)
			if err != nil {
				return err
			}
			fmt.Printf("review %s is now %s\n", review.ID, review.DocumentState)
			return nil
		},
	}
}

func printReview(r *model.SolutionReview) {
	fmt.Printf("ID:            %s\n", r.ID)
	fmt.Printf("System:        %s\n", r.SystemCode)
	fmt.Printf("Solution:      %s\n", r.Overview.SolutionName)
	fmt.Printf("Type:          %s\n", r.Overview.ReviewType)
	fmt.Printf("Business unit: %s\n", r.Overview.BusinessUnit)
	fmt.Printf("State:         %s\n", workflow.NormalizeState(r.DocumentState))
	if r.RejectionReason != "" {
		fmt.Printf("Rejected:      %s\n", r.RejectionReason)
	}
	fmt.Println("Sections:")
	for _, section := range model.WizardSections[1:] {
		fmt.Printf("  %-22s %d\n", section, r.SectionLen(section))
	}
}
