// Command observe runs scripted sequences of mutations against the observable containers, printing every change event it receives.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/saylorsolutions/observe/cli"
	"github.com/saylorsolutions/observe/diag"
	"github.com/saylorsolutions/observe/notify"
	"github.com/saylorsolutions/observe/patterns/eventbus"
	"github.com/saylorsolutions/observe/patterns/observer"
	"github.com/saylorsolutions/observe/structures/observmap"
	"github.com/saylorsolutions/observe/structures/registry"
	"github.com/saylorsolutions/observe/structures/set"
	flag "github.com/spf13/pflag"
	"io"
	"os"
)

var errFailingHandler = errors.New("failing handler")

type options struct {
	async bool
	fail  bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "observe: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out, errOut io.Writer) error {
	cmds := commands(errOut)
	cmds.Printer().Redirect(out)
	if cmds.RespondUsage(args, "Runs a scripted sequence of mutations, and prints every change event.") {
		return nil
	}
	return cmds.Exec(args)
}

type scenario func(opts options, printer *cli.Printer) error

func commands(errOut io.Writer) *cli.CommandSet {
	cmds := cli.NewCommandSet("observe")
	add := func(key, shortUsage string, fn scenario, aliases ...string) {
		cmd := cmds.AddCommand(key, shortUsage, aliases...)
		flags := cmd.Flags()
		flags.Bool("async", false, "Use asynchronous handlers and wait for them to settle")
		flags.Bool("fail", false, "Add a handler that always fails, to show diagnostic reporting")
		flags.Bool("json", false, "Write diagnostics as JSON")
		cmd.Usage("%s [FLAGS]", key)
		cmd.Does(func(flags *flag.FlagSet, printer *cli.Printer) error {
			cfg, err := diag.LoadConfig()
			if err != nil {
				return err
			}
			if cli.MustGet(flags.GetBool("json")) {
				cfg.Format = diag.FormatJSON
			}
			diag.SetLogger(diag.NewLogger(cfg, errOut))
			defer diag.SetLogger(nil)
			return fn(options{
				async: cli.MustGet(flags.GetBool("async")),
				fail:  cli.MustGet(flags.GetBool("fail")),
			}, printer)
		})
	}
	add("registry", "Registers, updates, and unregisters keys in a registry", runRegistry, "reg")
	add("subject", "Derives fahrenheit from a celsius subject", runSubject)
	add("set", "Adds and removes tags in an observable set", runSet)
	add("bus", "Emits greetings on a topic bus with declared topics", runBus)
	return cmds
}

func printer[T any](out *cli.Printer, label string) func(T) error {
	return func(event T) error {
		data, err := json.Marshal(event)
		if err != nil {
			return err
		}
		out.Printf("%-6s %s\n", label, data)
		return nil
	}
}

func failing[T any](T) error {
	return errFailingHandler
}

func subscribe[T any](opts options, sub func(notify.Handler[T]) *notify.Subscription, subAsync func(notify.AsyncHandler[T]) *notify.Subscription, handler func(T) error) {
	if opts.async {
		subAsync(notify.Async(handler))
		return
	}
	sub(handler)
}

func runRegistry(opts options, out *cli.Printer) error {
	type event = observmap.Event[string, int]
	reg := registry.New[string, int](observmap.WithName[string, int]("demo-registry"))
	defer reg.Destroy()

	subscribe(opts, reg.OnChange, reg.OnChangeAsync, printer[event](out, "first"))
	subscribe(opts, reg.OnChange, reg.OnChangeAsync, printer[event](out, "second"))
	if opts.fail {
		subscribe(opts, reg.OnChange, reg.OnChangeAsync, failing[event])
	}

	register, update, unregister := reg.Register, reg.Update, reg.Unregister
	updateWith, store := reg.UpdateWith, reg.Set
	if opts.async {
		register, update, unregister = reg.RegisterWait, reg.UpdateWait, reg.UnregisterWait
		updateWith, store = reg.UpdateWithWait, reg.SetWait
	}

	if err := register("x", 1); err != nil {
		return err
	}
	store("x", 1)
	if err := update("x", 2); err != nil {
		return err
	}
	if err := register("x", 3); err != nil {
		out.Printf("register rejected: %v\n", err)
	}
	if err := updateWith("x", func(current int) (int, error) {
		return 0, fmt.Errorf("cannot transform %d", current)
	}); err != nil {
		out.Printf("update rejected: %v\n", err)
	}
	out.Printf("unregister x: %t\n", unregister("x"))
	out.Printf("unregister x: %t\n", unregister("x"))
	return nil
}

func runSubject(opts options, out *cli.Printer) error {
	celsius := observer.NewSubject(20.0, observer.WithName[float64]("celsius"))
	defer celsius.Destroy()
	fahrenheit := observer.Map(celsius, func(c float64) float64 {
		return c*9/5 + 32
	})
	defer fahrenheit.Destroy()

	subscribe(opts, fahrenheit.OnChange, fahrenheit.OnChangeAsync, printer[float64](out, "fahrenheit"))
	if opts.fail {
		subscribe(opts, celsius.OnChange, celsius.OnChangeAsync, failing[float64])
	}
	set := celsius.Set
	if opts.async {
		set = celsius.SetWait
	}
	for _, c := range []float64{20, 25, 100} {
		set(c)
	}
	out.Printf("celsius: %v, fahrenheit: %v\n", celsius.Get(), fahrenheit.Get())
	return nil
}

func runSet(opts options, out *cli.Printer) error {
	type event = set.Event[string]
	tags := set.NewObservable[string]()
	defer tags.Destroy()

	subscribe(opts, tags.OnChange, tags.OnChangeAsync, printer[event](out, "tags"))
	if opts.fail {
		subscribe(opts, tags.OnChange, tags.OnChangeAsync, failing[event])
	}
	add, del, reset := tags.Add, tags.Delete, tags.Clear
	if opts.async {
		add, del, reset = tags.AddWait, tags.DeleteWait, tags.ClearWait
	}
	add("go")
	add("go")
	add("events")
	del("missing")
	out.Printf("union: %v\n", tags.Union(set.New("observers")).Slice())
	reset()
	reset()
	return nil
}

func runBus(opts options, out *cli.Printer) error {
	const topic = "greetings"
	bus := eventbus.NewBus(eventbus.DeclareTopics(topic))
	defer bus.Destroy()

	var err error
	if opts.async {
		_, err = eventbus.SubscribeAsync(bus, topic, notify.Async(printer[string](out, topic)))
	} else {
		_, err = eventbus.Subscribe(bus, topic, printer[string](out, topic))
	}
	if err != nil {
		return err
	}
	if opts.fail {
		if _, err := eventbus.Subscribe(bus, topic, failing[string]); err != nil {
			return err
		}
	}

	emit := eventbus.Emit[string]
	if opts.async {
		emit = eventbus.EmitWait[string]
	}
	for _, msg := range []string{"hello", "world"} {
		n, err := emit(bus, topic, msg)
		if err != nil {
			return err
		}
		out.Printf("delivered to %d handler(s)\n", n)
	}
	if _, err := emit(bus, "farewells", "goodbye"); err != nil {
		out.Printf("emit rejected: %v\n", err)
	}
	return nil
}
