package main

import (
	"context"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"leadconsole/internal/console"
	"leadconsole/internal/domain"
	"leadconsole/internal/filter"
)

// withApp opens the app for one command and prints whatever run returns.
func withApp(opts *rootOptions, run func(ctx context.Context, a *app) (any, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context(), opts, stderrToasts)
		if err != nil {
			return err
		}
		defer a.Close()

		out, err := run(cmd.Context(), a)
		if err != nil {
			return err
		}
		return render(os.Stdout, out, opts.table)
	}
}

func newLeadsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leads",
		Short: "List, search, filter, create and delete leads",
	}
	cmd.AddCommand(
		newLeadsListCmd(opts),
		newLeadsSearchCmd(opts),
		newLeadsFilterCmd(opts),
		newLeadsCreateCmd(opts),
		newLeadsDeleteCmd(opts),
	)
	cmd.PersistentFlags().BoolVar(&opts.table, "table", false, "print leads as a table instead of JSON")
	return cmd
}

func newLeadsListCmd(opts *rootOptions) *cobra.Command {
	var page, size int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Fetch one page of leads",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = withApp(opts, func(ctx context.Context, a *app) (any, error) {
		if cmd.Flags().Changed("size") && size != a.leads.Snapshot().PageSize {
			if !console.ValidPageSize(size) {
				return nil, console.ErrInvalidPageSize
			}
			// ChangePageSize always lands on page 1
			if _, err := a.leads.ChangePageSize(ctx, size); err != nil {
				return nil, err
			}
			if page <= 1 {
				return a.leads.Snapshot(), nil
			}
		}
		return a.leads.FetchPage(ctx, page)
	})
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&size, "size", console.DefaultPageSize, "page size (20, 50 or 100)")
	return cmd
}

func newLeadsSearchCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Free-text search across leads",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = func(c *cobra.Command, args []string) error {
		return withApp(opts, func(ctx context.Context, a *app) (any, error) {
			return a.leads.Search(ctx, args[0])
		})(c, args)
	}
	return cmd
}

func newLeadsFilterCmd(opts *rootOptions) *cobra.Command {
	var crit filter.Criteria
	var qualified string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Run a structured filter",
		Long: `Run a structured filter. Ranges given with both bounds use the _between
form, a single bound uses _gt/_lt (numbers) or _after/_before (dates).`,
		Args: cobra.NoArgs,
	}
	cmd.RunE = withApp(opts, func(ctx context.Context, a *app) (any, error) {
		if qualified != "" {
			b, err := strconv.ParseBool(qualified)
			if err != nil {
				return nil, err
			}
			crit.IsQualified = &b
		}

		a.panel.Open()
		if dryRun {
			return a.panel.Set(crit), nil
		}
		a.panel.Set(crit)
		params := a.panel.Apply()
		snap, err := a.leads.ApplyFilter(ctx, params)
		if err != nil {
			return nil, err
		}
		return filterOutput{Params: params, State: snap}, nil
	})

	f := cmd.Flags()
	f.StringVar(&crit.Search, "search", "", "search text")
	f.StringVar(&crit.Status, "status", "", "status equals")
	f.StringVar(&crit.Source, "source", "", "source equals")
	f.StringVar(&crit.ScoreMin, "score-min", "", "minimum score")
	f.StringVar(&crit.ScoreMax, "score-max", "", "maximum score")
	f.StringVar(&crit.ValueMin, "value-min", "", "minimum lead value")
	f.StringVar(&crit.ValueMax, "value-max", "", "maximum lead value")
	f.StringVar(&crit.CreatedFrom, "created-from", "", "created at or after (date)")
	f.StringVar(&crit.CreatedTo, "created-to", "", "created at or before (date)")
	f.StringVar(&crit.LastActivityFrom, "activity-from", "", "last activity at or after (date)")
	f.StringVar(&crit.LastActivityTo, "activity-to", "", "last activity at or before (date)")
	f.StringVar(&qualified, "qualified", "", "true or false; unset means either")
	f.StringVar(&crit.Limit, "limit", "", "result limit (default "+filter.DefaultLimit+")")
	f.BoolVar(&dryRun, "dry-run", false, "print the query parameters without running it")
	return cmd
}

func newLeadsCreateCmd(opts *rootOptions) *cobra.Command {
	var in domain.LeadInput
	var source, status string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a lead",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = withApp(opts, func(ctx context.Context, a *app) (any, error) {
		in.Source = domain.Source(source)
		in.Status = domain.Status(status)
		if err := a.leads.Create(ctx, in); err != nil {
			return nil, err
		}
		return a.leads.Snapshot(), nil
	})

	f := cmd.Flags()
	f.StringVar(&in.FirstName, "first-name", "", "first name")
	f.StringVar(&in.LastName, "last-name", "", "last name")
	f.StringVar(&in.Email, "email", "", "email address")
	f.StringVar(&in.Phone, "phone", "", "10 digit phone, optional leading +")
	f.StringVar(&in.Company, "company", "", "company")
	f.StringVar(&in.City, "city", "", "city")
	f.StringVar(&in.State, "state", "", "state")
	f.StringVar(&source, "source", string(domain.SourceWebsite), "lead source")
	f.StringVar(&status, "status", string(domain.StatusNew), "lead status")
	f.StringVar(&in.Score, "score", "", "score")
	f.StringVar(&in.LeadValue, "value", "", "lead value")
	f.BoolVar(&in.IsQualified, "qualified", false, "mark as qualified")
	return cmd
}

func newLeadsDeleteCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a lead and refresh the first page",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = func(c *cobra.Command, args []string) error {
		return withApp(opts, func(ctx context.Context, a *app) (any, error) {
			if err := a.leads.Delete(ctx, args[0]); err != nil {
				return nil, err
			}
			return a.leads.Snapshot(), nil
		})(c, args)
	}
	return cmd
}
