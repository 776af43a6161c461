// Command auroractl is the CLI/process surface for the aurora error core:
// it demonstrates installing a trap, lists the catalog, and maps
// quit/exit values to OS exit statuses the way an embedding interpreter's
// top-level driver would.
package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/aurorart/aurora/errcore"
)

var (
	errorBand = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	fieldBand = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func main() {
	os.Exit(run())
}

func run() int {
	rt := errcore.NewDefaultRuntime()
	root := &cobra.Command{
		Use:   "auroractl",
		Short: "Inspect and exercise the aurora error-handling core",
	}
	root.AddCommand(catalogCmd(rt), trapDemoCmd(rt), serveCmd(rt))

	if err := root.Execute(); err != nil {
		rt.Log.WithError(err).Error("command failed")
		return errcore.ExitGenericFailure
	}
	return 0
}

func catalogCmd(rt *errcore.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the error catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			for code := 0; code < errcore.UserCode; code++ {
				category, id, tmpl, ok := rt.Catalog.Lookup(code)
				if !ok {
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%4d  %s/%s  (arity %d)\n", code, category, id, tmpl.Arity())
			}
			return nil
		},
	}
}

// trapDemoCmd runs one fail() call inside a pushed frame under WithTrap and
// prints the molded error in its conventional display format, styled with
// lipgloss so severity is visible in a terminal.
func trapDemoCmd(rt *errcore.Runtime) *cobra.Command {
	var reason string
	cmd := &cobra.Command{
		Use:   "trap",
		Short: "Install a handler and fail inside it, printing the molded error",
		RunE: func(cmd *cobra.Command, args []string) error {
			var exitCode int
			rt.WithTrap(func() {
				rt.PushFrame(&errcore.Frame{Label: "demo", IsCall: true})
				code, ok := rt.Catalog.CodeFor("script", "invalid-arg")
				if !ok {
					rt.Fail(errcore.StringReason{Text: reason})
					return
				}
				e, buildErr := errcore.MakeError(rt, code, errcore.StringCell(reason))
				if buildErr != nil {
					rt.Fail(errcore.StringReason{Text: buildErr.Error()})
					return
				}
				rt.Fail(errcore.ErrReason{Err: e})
			}, func(e *errcore.Error) {
				printMolded(cmd, rt, e)
				exitCode = errcore.ExitStatus(e)
			})
			if exitCode != 0 {
				os.Exit(exitCode)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&reason, "reason", "demo failure", "message to fail with")
	return cmd
}

// printMolded renders Mold's output line by line, bolding the "** Type
// Error: ..." headline and dimming the Where/Near/File/Line detail lines
// with lipgloss so the failure itself stands out in a terminal.
func printMolded(cmd *cobra.Command, rt *errcore.Runtime, e *errcore.Error) {
	out := cmd.OutOrStdout()
	for _, line := range strings.Split(strings.TrimRight(rt.MoldError(e), "\n"), "\n") {
		if strings.HasPrefix(line, "** Where:") || strings.HasPrefix(line, "** Near:") ||
			strings.HasPrefix(line, "** File:") || strings.HasPrefix(line, "** Line:") {
			fmt.Fprintln(out, fieldBand.Render(line))
		} else {
			fmt.Fprintln(out, errorBand.Render(line))
		}
	}
}

// serveCmd exposes prometheus metrics and watches a directory for
// extension-category TOML files, registering each one against the
// catalog's extension-registration routine as it appears.
func serveCmd(rt *errcore.Runtime) *cobra.Command {
	var addr, watchDir string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve metrics and watch a directory for catalog extensions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if watchDir != "" {
				if err := watchExtensions(rt, watchDir); err != nil {
					return err
				}
			}
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(rt.Metrics.Registry, promhttp.HandlerOpts{}))
			rt.Log.WithField("addr", addr).Info("serving metrics")
			return http.ListenAndServe(addr, mux)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":9090", "metrics listen address")
	cmd.Flags().StringVar(&watchDir, "watch", "", "directory of extension-category TOML files to watch")
	return cmd
}

func watchExtensions(rt *errcore.Runtime, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("auroractl: watch %s: %w", dir, err)
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("auroractl: watch %s: %w", dir, err)
	}
	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
					continue
				}
				registerExtensionFile(rt, ev.Name)
			case werr, ok := <-watcher.Errors:
				if !ok {
					return
				}
				rt.Log.WithError(werr).Warn("catalog watch error")
			}
		}
	}()
	return nil
}

func registerExtensionFile(rt *errcore.Runtime, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		rt.Log.WithError(err).Warn("reading extension category file")
		return
	}
	extra, err := errcore.LoadCatalog(data)
	if err != nil {
		rt.Log.WithError(err).Warn("parsing extension category file")
		return
	}
	for code := 0; code < errcore.CategorySize; code++ {
		category, _, _, ok := extra.Lookup(code)
		if !ok {
			continue
		}
		c, _ := extra.Category(category)
		ids := make([]errcore.IDTemplate, 0, len(c.IDs()))
		for _, id := range c.IDs() {
			tmpl, _ := c.Template(id)
			ids = append(ids, errcore.IDTemplate{ID: id, Template: renderTemplateSource(tmpl)})
		}
		base, err := rt.Catalog.Register(errcore.CategoryTemplate{Name: c.Name, Type: c.Type, IDs: ids})
		if err != nil {
			rt.Log.WithError(err).WithField("category", c.Name).Warn("registering extension category")
			continue
		}
		rt.Log.WithFields(map[string]any{"category": c.Name, "base": base}).Info("registered extension category")
		break
	}
}

func renderTemplateSource(t errcore.Template) string {
	var out string
	for _, p := range t.Parts {
		if p.Param == "" {
			out += p.Lit
		} else {
			out += ":" + p.Param
		}
	}
	return out
}
