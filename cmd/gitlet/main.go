// Command gitlet is the CLI dispatcher for the repository core in
// package repo: argument parsing, exit codes, and console rendering —
// the parts the core itself deliberately knows nothing about.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gitlet/internal/clock"
	"gitlet/internal/logging"
	"gitlet/internal/objecthash"
	"gitlet/internal/repo"
	"gitlet/internal/validate"
	"gitlet/internal/vcserr"
	"gitlet/internal/watch"
)

var (
	logLevel string
	logger   *logging.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gitlet",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.NewLogger(logLevel)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return terminal(vcserr.ErrEmptyCommand)
			}
			return terminal(vcserr.ErrUnknownCommand)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "error", "structured log level")

	root.AddCommand(
		initCmd(),
		addCmd(),
		commitCmd(),
		rmCmd(),
		logCmd(),
		globalLogCmd(),
		statusCmd(),
		checkoutCmd(),
		branchCmd(),
		rmBranchCmd(),
		findCmd(),
		resetCmd(),
		mergeCmd(),
		authorCmd(),
		diffCmd(),
	)
	return root
}

// terminal prints a recognized error's exact message and reports
// success to cobra: the spec's error-handling policy is that every
// recognized error still exits the process with code 0.
func terminal(err error) error {
	fmt.Println(err.Error())
	return nil
}

// run wraps a command body: recognized *vcserr.Error values print and
// exit 0; anything else is an internal failure that propagates to
// cobra's own exit-1 path.
func run(body func() error) error {
	if err := body(); err != nil {
		if ve, ok := err.(*vcserr.Error); ok {
			return terminal(ve)
		}
		return err
	}
	return nil
}

func newContext() *repo.Context {
	cwd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return repo.NewContext(cwd, objecthash.Sum, clock.System{}, logger)
}

func requireOperands(args []string, want int) error {
	return validate.Operands(len(args), want)
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "init",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func() error {
				if err := requireOperands(args, 0); err != nil {
					return err
				}
				r, err := repo.Init(newContext())
				if err != nil {
					return err
				}
				defer r.Close()
				return nil
			})
		},
	}
}

func withRepo(body func(r *repo.Repository, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return run(func() error {
			r, err := repo.Load(newContext())
			if err != nil {
				return err
			}
			defer r.Close()

			if err := body(r, args); err != nil {
				return err
			}
			return r.Save()
		})
	}
}

func addCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "add",
		Args: cobra.ArbitraryArgs,
		RunE: withRepo(func(r *repo.Repository, args []string) error {
			if err := requireOperands(args, 1); err != nil {
				return err
			}
			return r.Add(args[0])
		}),
	}
}

func commitCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "commit",
		Args: cobra.ArbitraryArgs,
		RunE: withRepo(func(r *repo.Repository, args []string) error {
			if len(args) == 0 {
				return vcserr.ErrEmptyCommitMessage
			}
			if err := requireOperands(args, 1); err != nil {
				return err
			}
			if err := validate.CommitMessage(args[0]); err != nil {
				return err
			}
			_, err := r.Commit(args[0])
			return err
		}),
	}
}

func rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "rm",
		Args: cobra.ArbitraryArgs,
		RunE: withRepo(func(r *repo.Repository, args []string) error {
			if err := requireOperands(args, 1); err != nil {
				return err
			}
			return r.Remove(args[0])
		}),
	}
}

func logCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "log",
		Args: cobra.ArbitraryArgs,
		RunE: withRepo(func(r *repo.Repository, args []string) error {
			if err := requireOperands(args, 0); err != nil {
				return err
			}
			out, err := r.Log()
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		}),
	}
}

func globalLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "global-log",
		Args: cobra.ArbitraryArgs,
		RunE: withRepo(func(r *repo.Repository, args []string) error {
			if err := requireOperands(args, 0); err != nil {
				return err
			}
			out, err := r.GlobalLog()
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		}),
	}
}

func findCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "find",
		Args: cobra.ArbitraryArgs,
		RunE: withRepo(func(r *repo.Repository, args []string) error {
			if err := requireOperands(args, 1); err != nil {
				return err
			}
			ids, err := r.Find(args[0])
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Println(id)
			}
			return nil
		}),
	}
}

var watchStatus bool

func statusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:  "status",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func() error {
				if err := requireOperands(args, 0); err != nil {
					return err
				}
				if !watchStatus {
					r, err := repo.Load(newContext())
					if err != nil {
						return err
					}
					defer r.Close()
					printStatus(r.Status())
					return nil
				}
				return watchLoop()
			})
		},
	}
	cmd.Flags().BoolVar(&watchStatus, "watch", false, "re-render status on every working-directory change")
	return cmd
}

// watchLoop re-renders status on change until interrupted. Each
// render opens and closes its own Repository so that the advisory lock
// is never held across the idle time between filesystem events.
func watchLoop() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
	}()

	workDir, err := os.Getwd()
	if err != nil {
		return err
	}

	render := func() {
		r, err := repo.Load(newContext())
		if err != nil {
			fmt.Println(err)
			return
		}
		defer r.Close()
		printStatus(r.Status())
	}
	return watch.Watch(ctx, workDir, repo.RootDirName, logger, render)
}

// printStatus renders status with section headers colorized when
// stdout is a terminal; fatih/color leaves the text byte-for-byte
// unchanged when it isn't, so piped and test output still matches the
// spec's required headers exactly.
func printStatus(body string) {
	header := color.New(color.FgYellow, color.Bold)
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "=== ") {
			header.Println(line)
		} else {
			fmt.Println(line)
		}
	}
}

func checkoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "checkout",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func() error {
				r, err := repo.Load(newContext())
				if err != nil {
					return err
				}
				defer r.Close()

				switch {
				case len(args) == 2 && args[0] == "--":
					if err := r.CheckoutFileAtHead(args[1]); err != nil {
						return err
					}
				case len(args) == 3 && args[1] == "--":
					if err := r.CheckoutFileAtCommit(args[0], args[2]); err != nil {
						return err
					}
				case len(args) == 1:
					if err := r.CheckoutBranch(args[0]); err != nil {
						return err
					}
				default:
					return vcserr.ErrIncorrectOperands
				}
				return r.Save()
			})
		},
	}
	return cmd
}

func branchCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "branch",
		Args: cobra.ArbitraryArgs,
		RunE: withRepo(func(r *repo.Repository, args []string) error {
			if err := requireOperands(args, 1); err != nil {
				return err
			}
			if err := validate.BranchName(args[0]); err != nil {
				return err
			}
			return r.Branch(args[0])
		}),
	}
}

func rmBranchCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "rm-branch",
		Args: cobra.ArbitraryArgs,
		RunE: withRepo(func(r *repo.Repository, args []string) error {
			if err := requireOperands(args, 1); err != nil {
				return err
			}
			return r.RmBranch(args[0])
		}),
	}
}

func resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "reset",
		Args: cobra.ArbitraryArgs,
		RunE: withRepo(func(r *repo.Repository, args []string) error {
			if err := requireOperands(args, 1); err != nil {
				return err
			}
			_, err := r.Reset(args[0])
			return err
		}),
	}
}

func mergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "merge",
		Args: cobra.ArbitraryArgs,
		RunE: withRepo(func(r *repo.Repository, args []string) error {
			if err := requireOperands(args, 1); err != nil {
				return err
			}
			result, err := r.Merge(args[0])
			if err != nil {
				return err
			}
			if result.FastForward {
				fmt.Println("Current branch fast-forwarded.")
				return nil
			}
			if result.Conflict {
				fmt.Println("Encountered a merge conflict.")
			}
			return nil
		}),
	}
}

func authorCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "author",
		Args: cobra.ArbitraryArgs,
		RunE: withRepo(func(r *repo.Repository, args []string) error {
			if err := requireOperands(args, 1); err != nil {
				return err
			}
			return r.SetAuthor(args[0])
		}),
	}
}

func diffCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "diff",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func() error {
				if err := requireOperands(args, 1); err != nil {
					return err
				}
				r, err := repo.Load(newContext())
				if err != nil {
					return err
				}
				defer r.Close()
				return renderDiff(r, args[0])
			})
		},
	}
}
