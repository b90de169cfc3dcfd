package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gogo/protobuf/proto"
	"github.com/gosuri/uitable"
	cli "github.com/jawher/mow.cli"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"sigs.k8s.io/yaml"

	v1 "github.com/ibm/sfrest/api/v1"
	"github.com/ibm/sfrest/backup"
	"github.com/ibm/sfrest/client"
	"github.com/ibm/sfrest/connection"
	"github.com/ibm/sfrest/logger"
)

const (
	outputJSON  = "json"
	outputYAML  = "yaml"
	outputTable = "table"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type backupCall func(ctx context.Context, b *backup.Client) (connection.Response, error)

// tablePrinter renders a response for "-o table". Commands without one print json.
type tablePrinter func(out io.Writer, res connection.Response) error

type cliApp struct {
	out       io.Writer
	log       *zap.SugaredLogger
	newClient func() (*client.Client, error)
	output    *string
}

func newApp(out io.Writer, logr *zap.SugaredLogger, newClient func() (*client.Client, error)) *cli.Cli {
	app := cli.App("sfrest", "Manage Site Factory backups")
	app.Version("v version", "sfrest "+Version)

	a := &cliApp{
		out:       out,
		log:       logr,
		newClient: newClient,
		output:    app.StringOpt("o output", outputJSON, "Output format: json, yaml or table"),
	}

	app.Command("backups", "List, create and delete site backups", func(cmd *cli.Cmd) {
		cmd.Command("list", "List the backups of a site", a.listBackups)
		cmd.Command("url", "Get a temporary download URL for a backup", a.backupURL)
		cmd.Command("delete", "Delete a backup", a.deleteBackup)
		cmd.Command("create", "Start a backup of a site", a.createBackup)
	})
	app.Command("expiration", "Manage the backup expiration policy", func(cmd *cli.Cmd) {
		cmd.Command("get", "Show the number of days backups are kept", a.expirationGet)
		cmd.Command("set", "Set the number of days backups are kept", a.expirationSet)
	})

	return app
}

func (a *cliApp) listBackups(cmd *cli.Cmd) {
	cmd.Spec = "NID [--page] [--limit] [--order]"

	nid := cmd.StringArg("NID", "", "Site node id")
	page := cmd.IntOpt("page", 0, "Page of results")
	limit := cmd.IntOpt("limit", 0, "Number of backups per page")
	order := cmd.StringOpt("order", "", "Sort order (ASC or DESC)")

	cmd.Action = a.action(printBackupTable, func(ctx context.Context, b *backup.Client) (connection.Response, error) {
		return b.ListBackups(ctx, *nid, backup.ListOptions{Page: *page, Limit: *limit, Order: *order})
	}, logger.FieldSiteID, nid)
}

func (a *cliApp) backupURL(cmd *cli.Cmd) {
	cmd.Spec = "NID BID [--lifetime]"

	nid := cmd.StringArg("NID", "", "Site node id")
	bid := cmd.StringArg("BID", "", "Backup id")
	lifetime := cmd.IntOpt("lifetime", backup.DefaultURLLifetime, "Validity of the URL in seconds")

	cmd.Action = a.action(printURLTable, func(ctx context.Context, b *backup.Client) (connection.Response, error) {
		return b.BackupURL(ctx, *nid, *bid, backup.URLOptions{Lifetime: proto.Int32(int32(*lifetime))})
	}, logger.FieldSiteID, nid, logger.FieldBackupID, bid)
}

func (a *cliApp) deleteBackup(cmd *cli.Cmd) {
	cmd.Spec = "NID BID"

	nid := cmd.StringArg("NID", "", "Site node id")
	bid := cmd.StringArg("BID", "", "Backup id")

	cmd.Action = a.action(printTaskTable, func(ctx context.Context, b *backup.Client) (connection.Response, error) {
		return b.DeleteBackup(ctx, *nid, *bid)
	}, logger.FieldSiteID, nid, logger.FieldBackupID, bid)
}

func (a *cliApp) createBackup(cmd *cli.Cmd) {
	cmd.Spec = "NID [--label] [--callback-data] [--callback-url] [--callback-method] [--component...]"

	nid := cmd.StringArg("NID", "", "Site node id")
	label := cmd.StringOpt("label", "", "Label of the backup")
	callbackData := cmd.StringOpt("callback-data", "", "Data passed back to the callback")
	callbackURL := cmd.StringOpt("callback-url", "", "URL called when the backup is done")
	callbackMethod := cmd.StringOpt("callback-method", "", "HTTP method of the callback (GET or POST)")
	components := cmd.StringsOpt("component", nil, "Component to back up: codebase, database, public files, private files or themes")

	cmd.Action = a.action(printTaskTable, func(ctx context.Context, b *backup.Client) (connection.Response, error) {
		opts := backup.CreateOptions{
			Label:          *label,
			CallbackData:   *callbackData,
			CallbackURL:    *callbackURL,
			CallbackMethod: *callbackMethod,
		}
		for _, component := range *components {
			opts.Components = append(opts.Components, v1.BackupComponent(component))
		}
		return b.CreateBackup(ctx, *nid, opts)
	}, logger.FieldSiteID, nid)
}

func (a *cliApp) expirationGet(cmd *cli.Cmd) {
	cmd.Action = a.action(nil, func(ctx context.Context, b *backup.Client) (connection.Response, error) {
		return b.ExpirationGet(ctx)
	})
}

func (a *cliApp) expirationSet(cmd *cli.Cmd) {
	cmd.Spec = "DAYS"

	days := cmd.IntArg("DAYS", 0, "Number of days backups are kept")

	cmd.Action = a.action(nil, func(ctx context.Context, b *backup.Client) (connection.Response, error) {
		if *days < 0 {
			return nil, errors.Errorf("DAYS must not be negative, got %d", *days)
		}
		return b.ExpirationSet(ctx, *days)
	})
}

// action returns the mow.cli action running call. Pairs of log field names and
// argument pointers are added to the error log.
func (a *cliApp) action(table tablePrinter, call backupCall, fields ...interface{}) func() {
	return func() {
		if err := a.execute(call, table); err != nil {
			a.log.With(logFields(fields)...).With(zap.Error(err)).Error("command failed")
			cli.Exit(1)
		}
	}
}

func (a *cliApp) execute(call backupCall, table tablePrinter) error {
	sf, err := a.newClient()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := call(ctx, sf.Backup())
	if err != nil {
		return err
	}
	return a.print(res, table)
}

func (a *cliApp) print(res connection.Response, table tablePrinter) error {
	format := strings.ToLower(*a.output)
	switch format {
	case outputTable:
		if table != nil {
			return table(a.out, res)
		}
		a.log.Debugf("table output is not available for this command, using json")
		fallthrough
	case outputJSON:
		b, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = fmt.Fprintln(a.out, string(b))
		return err
	case outputYAML:
		b, err := yaml.Marshal(res)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = a.out.Write(b)
		return err
	default:
		return errors.Errorf("unknown output format %q", *a.output)
	}
}

func printBackupTable(out io.Writer, res connection.Response) error {
	var list v1.BackupList
	if err := res.Decode(&list); err != nil {
		return err
	}

	table := newTable()
	table.AddRow("ID", "LABEL", "CREATED", "COMPONENTS")
	for _, b := range list.Backups {
		components := make([]string, 0, len(b.Components))
		for _, c := range b.Components {
			components = append(components, string(c))
		}
		table.AddRow(b.IDString(), b.Label, humanize.Time(b.CreatedAt()), strings.Join(components, ", "))
	}
	_, err := fmt.Fprintln(out, table)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%d backup(s)\n", list.Count)
	return err
}

func printURLTable(out io.Writer, res connection.Response) error {
	var backupURL v1.BackupURL
	if err := res.Decode(&backupURL); err != nil {
		return err
	}

	table := newTable()
	table.AddRow("URL", "LIFETIME")
	lifetime := "-"
	if backupURL.Lifetime > 0 {
		lifetime = humanize.Comma(int64(backupURL.Lifetime)) + "s"
	}
	table.AddRow(backupURL.URL, lifetime)
	_, err := fmt.Fprintln(out, table)
	return err
}

func printTaskTable(out io.Writer, res connection.Response) error {
	var task v1.Task
	if err := res.Decode(&task); err != nil {
		return err
	}

	table := newTable()
	table.AddRow("TASK ID", "MESSAGE")
	table.AddRow(task.TaskID, task.Message)
	_, err := fmt.Fprintln(out, table)
	return err
}

func newTable() *uitable.Table {
	table := uitable.New()
	table.MaxColWidth = 50
	table.Wrap = true
	return table
}

func logFields(fields []interface{}) []interface{} {
	resolved := make([]interface{}, 0, len(fields))
	for _, f := range fields {
		if s, ok := f.(*string); ok {
			resolved = append(resolved, *s)
			continue
		}
		resolved = append(resolved, f)
	}
	return resolved
}
