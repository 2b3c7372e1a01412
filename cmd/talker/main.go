package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"regexp"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	httpAdapter "github.com/nivir/beginner-tutorials/internal/adapters/http"
	logAdapter "github.com/nivir/beginner-tutorials/internal/adapters/log"
	redisAdapter "github.com/nivir/beginner-tutorials/internal/adapters/redis"
	"github.com/nivir/beginner-tutorials/internal/cliconfig"
	"github.com/nivir/beginner-tutorials/internal/domain"
	"github.com/nivir/beginner-tutorials/pkg/talker"
	"github.com/nivir/beginner-tutorials/plugins/messagewatcher"
)

const longHelp = `Publish a numbered message on the chatter topic at a fixed frequency and
announce the world -> talk transform on every tick.

The message can be replaced at runtime through the modifyTalkerMessage
service (see "talker call") or by pointing --message-file at a file.
Configure via file ($HOME/.talker/config.toml), TALKER_* env, or flags.
A positional frequency argument wins over all of them.`

var exampleUsage = strings.TrimSpace(`
  talker 5
  talker --redis-addr localhost:6379 --namespace robot1
  talker call "hello world"
  talker echo chatter --redis-addr localhost:6379
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(runNode)
	root.SetArgs(normalizeArgs(root, os.Args[1:]))

	if err := root.ExecuteContext(ctx); err != nil {
		log := cliconfig.Logger(cliconfig.DefaultConfig().LogLevel)
		log.Error().Err(err).Msg("talker")
		stop()
		os.Exit(1)
	}
}

// newRootCmd builds the talker command tree. run is invoked by the root
// command with the fully layered configuration.
func newRootCmd(run func(ctx context.Context, cfg cliconfig.Config) error) *cobra.Command {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:     "talker [frequency]",
		Short:   "Periodically publish a modifiable message and a fixed transform",
		Long:    longHelp,
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd, args, cfgPath, &cfg); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	call := &cobra.Command{
		Use:   "call <text>",
		Short: "Replace the message of a running talker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd, nil, cfgPath, &cfg); err != nil {
				return err
			}
			client := httpAdapter.NewServiceClient(&http.Client{Timeout: 10 * time.Second}, cfg.ServiceAddr)
			resp, err := client.Modify(cmd.Context(), domain.ModifyRequest{Input: args[0]})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Modified)
			return nil
		},
	}

	echo := &cobra.Command{
		Use:       "echo [chatter|tf]",
		Short:     "Print messages published by talker nodes",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"chatter", "tf"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd, nil, cfgPath, &cfg); err != nil {
				return err
			}
			topic := "chatter"
			if len(args) == 1 {
				topic = args[0]
			}
			return runEcho(cmd, cfg, topic)
		},
	}

	root.AddCommand(call, echo)

	// Flags
	f := root.PersistentFlags()
	f.StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.talker/config.toml)")
	f.StringVar(&cfg.NodeName, "node-name", cfg.NodeName, "node name stamped on published messages")
	f.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "Redis address for chatter/tf (empty: log only)")
	f.StringVar(&cfg.RedisPassword, "redis-password", cfg.RedisPassword, "Redis password")
	f.IntVar(&cfg.RedisDB, "redis-db", cfg.RedisDB, "Redis database")
	f.StringVar(&cfg.Namespace, "namespace", cfg.Namespace, "channel namespace prefix")
	f.StringVar(&cfg.ChatterTopic, "chatter-topic", cfg.ChatterTopic, "chatter topic name")
	f.StringVar(&cfg.TransformTopic, "tf-topic", cfg.TransformTopic, "transform topic name")
	f.StringVar(&cfg.ServiceAddr, "service-addr", cfg.ServiceAddr, "address of the modifyTalkerMessage service")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	root.Flags().IntVar(&cfg.Frequency, "frequency", cfg.Frequency, "publish frequency in Hz")
	root.Flags().StringVar(&cfg.Message, "message", cfg.Message, "initial message")
	root.Flags().IntVar(&cfg.ChatterQueueSize, "chatter-queue", cfg.ChatterQueueSize, "pending chatter messages before dropping the oldest")
	root.Flags().IntVar(&cfg.TransformQueueSize, "tf-queue", cfg.TransformQueueSize, "pending transforms before dropping the oldest")
	root.Flags().StringVar(&cfg.MessageFile, "message-file", cfg.MessageFile, "file whose content replaces the message when it changes")
	root.Flags().DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "graceful shutdown timeout")

	return root
}

var negativeNumber = regexp.MustCompile(`^-[0-9]`)

// normalizeArgs moves a negative positional frequency behind "--" so pflag
// does not read it as a shorthand flag. Subcommand invocations and argument
// lists that already carry "--" are returned unchanged.
func normalizeArgs(root *cobra.Command, args []string) []string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--":
			return args
		case negativeNumber.MatchString(a):
			out := make([]string, 0, len(args)+1)
			out = append(out, args[:i]...)
			out = append(out, args[i+1:]...)
			return append(out, "--", a)
		case strings.HasPrefix(a, "-"):
			if takesValue(root, a) {
				i++
			}
		default:
			return args
		}
	}
	return args
}

// takesValue reports whether flag arg consumes the following token.
func takesValue(root *cobra.Command, arg string) bool {
	if strings.Contains(arg, "=") {
		return false
	}
	var f *pflag.Flag
	if name, ok := strings.CutPrefix(arg, "--"); ok {
		if f = root.Flags().Lookup(name); f == nil {
			f = root.PersistentFlags().Lookup(name)
		}
	} else if len(arg) == 2 {
		if f = root.Flags().ShorthandLookup(arg[1:]); f == nil {
			f = root.PersistentFlags().ShorthandLookup(arg[1:])
		}
	}
	return f != nil && f.NoOptDefVal == ""
}

// loadConfig layers file, env, flags and positional args into cfg.
func loadConfig(cmd *cobra.Command, args []string, cfgPath string, cfg *cliconfig.Config) error {
	cfgFile := cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(cfg, fc, changed); err != nil {
			return err
		}
	}

	if err := cliconfig.ApplyEnvConfig(cfg, changed); err != nil {
		return err
	}

	cliconfig.ApplyArgs(cfg, args)

	return cfg.Validate()
}

func runNode(ctx context.Context, cfg cliconfig.Config) error {
	log := cliconfig.Logger(cfg.LogLevel)

	logCfg := cfg
	if logCfg.RedisPassword != "" {
		logCfg.RedisPassword = "*****"
	}
	log.Info().Interface("config", logCfg).Msg("configuration")

	logger := logAdapter.NewZerologAdapterWithLogger(log)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	opts := []talker.Option{
		talker.WithLogger(logger),
		talker.WithRegisterer(reg),
	}

	if cfg.RedisAddr != "" {
		client, err := connectRedis(ctx, cfg)
		if err != nil {
			return err
		}
		defer client.Close()
		opts = append(opts, talker.WithPublisher(redisAdapter.NewPublisher(client, cfg.ChatterTopic, cfg.TransformTopic)))
	} else {
		log.Warn().Msg("no redis-addr configured, messages are only logged at debug level")
	}

	if cfg.MessageFile != "" {
		mwCfg := messagewatcher.DefaultConfig()
		mwCfg.Path = cfg.MessageFile
		opts = append(opts, messagewatcher.WithMessageWatcher(mwCfg))
	}

	node, err := talker.New(talker.Config{
		NodeName:           cfg.NodeName,
		Frequency:          cfg.Frequency,
		Message:            &cfg.Message,
		ChatterQueueSize:   cfg.ChatterQueueSize,
		TransformQueueSize: cfg.TransformQueueSize,
		ShutdownTimeout:    cfg.ShutdownTimeout,
	}, opts...)
	if err != nil {
		return fmt.Errorf("create talker: %w", err)
	}

	if err := node.Start(ctx); err != nil {
		return fmt.Errorf("start talker: %w", err)
	}

	handler := httpAdapter.NewHandler(httpAdapter.HandlerConfig{
		Mutator: node,
		Health: func() httpAdapter.Health {
			return httpAdapter.Health{
				Node:      node.Name(),
				ID:        node.ID(),
				State:     node.Status().String(),
				Sequence:  node.Sequence(),
				Frequency: node.EffectiveFrequency(),
			}
		},
		Metrics: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		Logger:  logger,
	})
	srv := httpAdapter.NewServer(cfg.ServiceAddr, handler, logger, cfg.ShutdownTimeout)

	srvCtx, cancelSrv := context.WithCancel(ctx)
	defer cancelSrv()
	srvErr := make(chan error, 1)
	go func() { srvErr <- srv.Run(srvCtx) }()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("received signal, stopping...")
	case runErr = <-srvErr:
		if runErr != nil {
			log.Error().Err(runErr).Msg("service stopped")
			runErr = fmt.Errorf("serve %s: %w", domain.ModifyServiceName, runErr)
		}
	}

	cancelSrv()
	if err := node.Stop(); err != nil {
		return errors.Join(runErr, fmt.Errorf("stop talker: %w", err))
	}
	return runErr
}

func connectRedis(ctx context.Context, cfg cliconfig.Config) (*redisAdapter.Client, error) {
	client, err := redisAdapter.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, cfg.Namespace, cfg.NodeName)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
	}
	return client, nil
}

func runEcho(cmd *cobra.Command, cfg cliconfig.Config, topic string) error {
	if cfg.RedisAddr == "" {
		return fmt.Errorf("redis-addr is required for echo")
	}
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	client, err := connectRedis(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	log := cliconfig.Logger(cfg.LogLevel)

	switch topic {
	case "tf":
		sub, err := client.SubscribeTransforms(ctx, cfg.TransformTopic)
		if err != nil {
			return err
		}
		defer sub.Close()
		return echoLoop(ctx, log, sub.Events(), sub.Errors(), func(env redisAdapter.TransformEnvelope) {
			b, _ := json.Marshal(env)
			fmt.Fprintln(out, string(b))
		})
	default:
		sub, err := client.SubscribeChatter(ctx, cfg.ChatterTopic)
		if err != nil {
			return err
		}
		defer sub.Close()
		return echoLoop(ctx, log, sub.Events(), sub.Errors(), func(env redisAdapter.ChatterEnvelope) {
			fmt.Fprintf(out, "[%s] %s\n", env.Node, env.Data)
		})
	}
}

func echoLoop[T any](ctx context.Context, log zerolog.Logger, events <-chan T, errs <-chan error, print func(T)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case env, ok := <-events:
			if !ok {
				return nil
			}
			print(env)
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			log.Warn().Err(err).Msg("skipped message")
		}
	}
}
