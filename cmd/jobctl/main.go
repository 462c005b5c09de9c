// cmd/jobctl/main.go
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"jobboard/internal/config"
	"jobboard/internal/confirm"
	"jobboard/internal/domain"
	"jobboard/internal/form"
	jobhttp "jobboard/internal/infra/http"
	"jobboard/internal/navigation"
	"jobboard/internal/notify"
	"jobboard/internal/scheduler"
	"jobboard/internal/tracing"
	"jobboard/internal/usecase"
	"jobboard/internal/validation"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var traceOut io.Writer
	if cfg.TraceStdout {
		traceOut = os.Stderr
	}
	tracerShutdown, err := tracing.InitTracer("jobboard-cli", traceOut, logger)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	a := &app{
		api:      jobhttp.NewJobClient(cfg.APIBaseURL, cfg.HttpTimeout, logger),
		in:       bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		logger:   logger,
		schedule: cfg.WatchSchedule,
	}
	err = a.run(ctx, os.Args[1:])
	stop()
	if serr := tracerShutdown(context.Background()); serr != nil {
		logger.Error("failed to shutdown tracer", "error", serr)
	}
	if err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

var errUsage = errors.New("usage")

type app struct {
	api      domain.JobAPI
	in       *bufio.Reader
	out      io.Writer
	logger   *slog.Logger
	schedule string
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return errUsage
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "list":
		return a.runList(ctx, rest)
	case "show":
		return a.runShow(ctx, rest)
	case "add":
		return a.runAdd(ctx, rest)
	case "edit":
		return a.runEdit(ctx, rest)
	case "delete":
		return a.runDelete(ctx, rest)
	case "watch":
		return a.runWatch(ctx, rest)
	case "help", "-h", "--help":
		a.usage()
		return nil
	default:
		fmt.Fprintf(a.out, "Unknown command: %s\n", cmd)
		a.usage()
		return errUsage
	}
}

func (a *app) usage() {
	fmt.Fprint(a.out, `Usage: jobctl <command> [flags]

Commands:
  list   [-home]           list jobs (home shows the 3 most recent)
  show   -id ID            show one job
  add    [field flags]     add a job (or -file draft.json)
  edit   -id ID [flags]    edit a job; unset flags keep current values
  delete -id ID            delete a job after confirmation
  watch  [-schedule SPEC]  re-list jobs on a cron schedule
`)
}

func (a *app) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

func (a *app) runList(ctx context.Context, args []string) error {
	fs := a.newFlagSet("list")
	home := fs.Bool("home", false, "Show only the most recent jobs")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	jobs, err := a.api.List(ctx)
	if err != nil {
		return fmt.Errorf("fetching jobs: %w", err)
	}
	renderListing(a.out, jobs, *home)
	return nil
}

func (a *app) runShow(ctx context.Context, args []string) error {
	fs := a.newFlagSet("show")
	id := fs.String("id", "", "Job id")
	if err := fs.Parse(args); err != nil || *id == "" {
		return errUsage
	}
	job, err := a.api.Get(ctx, *id)
	if errors.Is(err, domain.ErrJobNotFound) || errors.Is(err, domain.ErrMalformedResponse) {
		fmt.Fprintln(a.out, "Job not found.")
		return err
	}
	if err != nil {
		return err
	}
	renderJob(a.out, job)
	return nil
}

// draftFlags registers one string flag per form field.
func draftFlags(fs *flag.FlagSet) map[string]*string {
	vals := make(map[string]*string, len(domain.FormFields))
	for _, f := range domain.FormFields {
		vals[f] = fs.String(f, "", "Job "+strings.ReplaceAll(f, "_", " "))
	}
	return vals
}

func (a *app) runAdd(ctx context.Context, args []string) error {
	fs := a.newFlagSet("add")
	file := fs.String("file", "", "JSON draft file")
	vals := draftFlags(fs)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	var draft domain.JobFormInput
	if *file != "" {
		raw, err := os.ReadFile(*file)
		if err != nil {
			return fmt.Errorf("reading draft: %w", err)
		}
		if err := json.Unmarshal(raw, &draft); err != nil {
			return fmt.Errorf("parsing draft %s: %w", *file, err)
		}
	}
	router := navigation.NewRouter(navigation.AddJobPath, a.logger)
	return a.submit(ctx, router, nil, draft, fs, vals)
}

func (a *app) runEdit(ctx context.Context, args []string) error {
	fs := a.newFlagSet("edit")
	id := fs.String("id", "", "Job id")
	vals := draftFlags(fs)
	if err := fs.Parse(args); err != nil || *id == "" {
		return errUsage
	}
	job, err := a.api.Get(ctx, *id)
	if err != nil {
		return err
	}
	router := navigation.NewRouter(navigation.EditPath(*id), a.logger)
	return a.submit(ctx, router, job, domain.JobFormInput{}, fs, vals)
}

// submit drives one form instance: seed the draft, apply explicitly set
// flags, submit and report.
func (a *app) submit(ctx context.Context, router *navigation.Router, rec *domain.JobRecord, draft domain.JobFormInput, fs *flag.FlagSet, vals map[string]*string) error {
	hub := notify.NewHub(a.logger)
	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)

	ctrl := form.New(
		validation.New(),
		router,
		usecase.NewSubmissionService(a.api, a.logger),
		hub,
		router,
		a.logger,
		form.WithRecord(rec),
	)
	if rec == nil {
		for _, f := range domain.FormFields {
			v, _ := draft.Get(f)
			_ = ctrl.SetField(f, v)
		}
	}
	var setErr error
	fs.Visit(func(fl *flag.Flag) {
		if p, ok := vals[fl.Name]; ok && setErr == nil {
			setErr = ctrl.SetField(fl.Name, *p)
		}
	})
	if setErr != nil {
		return setErr
	}

	fmt.Fprintf(a.out, "%s: %s\n", ctrl.Title(), ctrl.SubmitLabel())
	id, err := ctrl.Submit(ctx)
	renderNotifications(a.out, notify.Drain(sub))

	var fieldErrs domain.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		fmt.Fprintln(a.out, "Please fix the following fields:")
		renderFieldErrors(a.out, fieldErrs)
		return err
	case err != nil:
		renderFieldErrors(a.out, ctrl.State().Errors)
		return err
	}
	fmt.Fprintf(a.out, "-> %s\n", router.Current())
	job, err := a.api.Get(ctx, id)
	if err != nil {
		a.logger.Warn("could not load saved job", "job_id", id, "error", err)
		return nil
	}
	renderJob(a.out, job)
	return nil
}

func (a *app) runDelete(ctx context.Context, args []string) error {
	fs := a.newFlagSet("delete")
	id := fs.String("id", "", "Job id")
	if err := fs.Parse(args); err != nil || *id == "" {
		return errUsage
	}

	hub := notify.NewHub(a.logger)
	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)
	router := navigation.NewRouter(navigation.DetailPath(*id), a.logger)
	wf := confirm.NewWorkflow(usecase.NewSubmissionService(a.api, a.logger), hub, router, a.logger)

	req := wf.RequestDeletion(*id)
	fmt.Fprintf(a.out, "%s\n%s\n[y] %s  [n] %s  [enter] dismiss: ", req.Title, req.Message, req.ConfirmLabel, req.CancelLabel)
	line, err := a.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("reading answer: %w", err)
	}
	fmt.Fprintln(a.out)

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		err = wf.Confirm(ctx)
		renderNotifications(a.out, notify.Drain(sub))
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "-> %s\n", router.Current())
	case "n", "no":
		wf.Cancel()
		fmt.Fprintln(a.out, "Kept.")
	default:
		wf.Dismiss()
		fmt.Fprintln(a.out, "Dismissed.")
	}
	return nil
}

func (a *app) runWatch(ctx context.Context, args []string) error {
	fs := a.newFlagSet("watch")
	schedule := fs.String("schedule", a.schedule, "Cron schedule for refreshing")
	home := fs.Bool("home", false, "Show only the most recent jobs")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	sink := func(jobs []*domain.JobRecord, err error) {
		if err != nil {
			fmt.Fprintf(a.out, "refresh failed: %v\n", err)
			return
		}
		renderListing(a.out, jobs, *home)
	}
	s, err := scheduler.NewRefreshScheduler(*schedule, a.api, sink, a.logger)
	if err != nil {
		return err
	}
	s.Refresh(ctx)
	if err := s.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
