package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tailored-agentic-units/goagent/gateway"
	"github.com/tailored-agentic-units/goagent/gateway/providers"
	"github.com/tailored-agentic-units/goagent/gateway/scripted"
	"github.com/tailored-agentic-units/goagent/kernel"
	"github.com/tailored-agentic-units/goagent/observability"
)

// app holds the persistent flags shared by every subcommand.
type app struct {
	configFile string
	observer   string
	verbose    bool
	logLevel   string
	scriptFile string
	stream     bool
	render     bool

	logSync func()
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "goagent",
		Short: "Run ReAct and Reflection agents against an LLM",
		Long: `goagent drives a language model through one of two loops:

  react    think, call a tool, observe, repeat until Finish[answer]
  reflect  draft, critique, refine until the critique says no changes are needed

Credentials come from the config file or LLM_MODEL_ID, LLM_API_KEY,
LLM_BASE_URL, LLM_PROVIDER and LLM_TIMEOUT. Web search reads SERPAPI_API_KEY.`,
		SilenceUsage: true,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logSync != nil {
				a.logSync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configFile, "config", "c", "", "Path to a JSON or YAML config file")
	flags.StringVar(&a.observer, "observer", "", "Comma-separated event sinks: slog, zap, noop (overrides config)")
	flags.StringVar(&a.logLevel, "log-level", "info", "Minimum event level: debug, info, warn or error")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Shorthand for --log-level debug")
	flags.StringVar(&a.scriptFile, "script", "", "Replay model responses from a file instead of calling a provider")
	flags.BoolVar(&a.stream, "stream", false, "Echo model output to stderr as it streams")
	flags.BoolVar(&a.render, "render", false, "Render the final answer as Markdown")

	root.AddCommand(newReactCmd(a), newReflectCmd(a), newToolsCmd(a), newMCPCmd(a))
	return root
}

func (a *app) loadConfig() (*kernel.Config, error) {
	var cfg *kernel.Config
	if a.configFile != "" {
		loaded, err := kernel.LoadConfig(a.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		def := kernel.DefaultConfig()
		if err := def.MergeEnv(os.LookupEnv); err != nil {
			return nil, err
		}
		cfg = &def
	}

	if a.observer != "" {
		cfg.Observer = a.observer
	}
	return cfg, nil
}

// newKernel wires the observer and gateway the flags ask for, then lets the
// kernel build everything else from cfg.
func (a *app) newKernel(cmd *cobra.Command, cfg *kernel.Config) (*kernel.Kernel, error) {
	obs, err := a.newObserver(cmd, cfg.Observer)
	if err != nil {
		return nil, err
	}

	gw, err := a.newGateway(cmd, cfg)
	if err != nil {
		return nil, err
	}

	return kernel.New(cfg, kernel.WithObserver(obs), kernel.WithGateway(gw))
}

// newObserver builds one observer per comma-separated sink name and fans
// events out to all of them.
func (a *app) newObserver(cmd *cobra.Command, names string) (observability.Observer, error) {
	level := observability.ParseLevel(a.logLevel)
	if a.verbose {
		level = observability.LevelVerbose
	}

	var observers []observability.Observer
	for _, name := range strings.Split(names, ",") {
		obs, err := a.sink(cmd, strings.TrimSpace(name), level)
		if err != nil {
			return nil, err
		}
		observers = append(observers, obs)
	}
	if len(observers) == 1 {
		return observers[0], nil
	}
	return observability.NewMultiObserver(observers...), nil
}

func (a *app) sink(cmd *cobra.Command, name string, level observability.Level) (observability.Observer, error) {
	switch name {
	case "", "slog":
		handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level.SlogLevel()})
		return observability.NewSlogObserver(slog.New(handler)), nil

	case "zap":
		zc := zap.NewProductionConfig()
		zc.OutputPaths = []string{"stderr"}
		zc.Level = zap.NewAtomicLevelAt(level.ZapLevel())
		logger, err := zc.Build()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
		a.logSync = func() { _ = logger.Sync() }
		return observability.NewZapObserver(logger), nil

	default:
		obs, err := observability.GetObserver(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s (known: %s)", kernel.ErrUnknownObserver, name, strings.Join(observability.ObserverNames(), ", "))
		}
		return obs, nil
	}
}

func (a *app) newGateway(cmd *cobra.Command, cfg *kernel.Config) (gateway.Gateway, error) {
	var gw gateway.Gateway
	if a.scriptFile != "" {
		data, err := os.ReadFile(a.scriptFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read script: %w", err)
		}
		gw = scripted.Texts(parseScript(string(data))...)
	} else {
		built, err := providers.New(cmd.Context(), cfg.Gateway)
		if err != nil {
			return nil, fmt.Errorf("failed to create gateway: %w", err)
		}
		gw = built
	}

	if s, ok := gw.(gateway.Streamer); ok && a.stream {
		out := cmd.ErrOrStderr()
		gw = gateway.Streaming(s, func(chunk string) { fmt.Fprint(out, chunk) })
	}
	return gw, nil
}

// printAnswer writes text to stdout, through glamour when --render is set.
func (a *app) printAnswer(cmd *cobra.Command, text string) error {
	out := cmd.OutOrStdout()
	if !a.render {
		_, err := fmt.Fprintln(out, text)
		return err
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	rendered, err := r.Render(text)
	if err != nil {
		return fmt.Errorf("failed to render answer: %w", err)
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}

// parseScript splits a script file into responses. Responses are separated
// by a line containing only "---".
func parseScript(data string) []string {
	data = strings.ReplaceAll(data, "\r\n", "\n")
	var (
		responses []string
		current   []string
	)
	for _, line := range strings.Split(data, "\n") {
		if strings.TrimSpace(line) == "---" {
			responses = append(responses, strings.TrimSpace(strings.Join(current, "\n")))
			current = current[:0]
			continue
		}
		current = append(current, line)
	}
	if last := strings.TrimSpace(strings.Join(current, "\n")); last != "" {
		responses = append(responses, last)
	}
	return responses
}
