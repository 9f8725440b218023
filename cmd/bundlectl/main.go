// Command bundlectl manages bundles through the bundle API.
//
//	bundlectl [-url URL] [-token TOKEN] <command> [flags]
//
// Commands: products, list, views, login, create, update <slug>, delete <slug>.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/guttosm/bundle-service/config"
	"github.com/guttosm/bundle-service/internal/adminstore"
	"github.com/guttosm/bundle-service/internal/domain/dto"
	"github.com/guttosm/bundle-service/internal/domain/model"
	"github.com/guttosm/bundle-service/internal/logger"
)

var errUsage = errors.New("usage: bundlectl [-url URL] [-token TOKEN] products|list|views|login|create|update <slug>|delete <slug>")

func main() {
	cfg := config.Load()
	logger.Init(cfg.Log.Level, true)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg.Client, os.Args[1:], os.Stdout); err != nil {
		var fieldErrs dto.FieldErrors
		if errors.As(err, &fieldErrs) {
			_ = writeJSON(os.Stderr, fieldErrs)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, defaults config.ClientConfig, args []string, out io.Writer) error {
	global := flag.NewFlagSet("bundlectl", flag.ContinueOnError)
	global.SetOutput(io.Discard)
	baseURL := global.String("url", defaults.BaseURL, "bundle API base URL")
	token := global.String("token", defaults.Token, "admin bearer token")
	timeout := global.Duration("timeout", 30*time.Second, "overall command timeout")
	if err := global.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if global.NArg() == 0 {
		return errUsage
	}

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	api := adminstore.NewAPIClient(*baseURL, adminstore.WithAuth(adminstore.BearerToken(*token)))
	cmd, rest := global.Arg(0), global.Args()[1:]

	switch cmd {
	case "login":
		return login(ctx, api, rest, out)
	case "products", "list", "views", "create", "update", "delete":
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}

	store := adminstore.NewStore(api)
	defer store.Close()
	store.Load(ctx)

	switch cmd {
	case "products":
		return writeJSON(out, store.Products())
	case "list":
		return writeJSON(out, store.Bundles())
	case "views":
		return writeJSON(out, store.Views())
	case "create":
		return save(ctx, store, -1, rest, out)
	case "update":
		if len(rest) == 0 {
			return fmt.Errorf("%w: update needs a slug", errUsage)
		}
		i, err := indexOf(store, rest[0])
		if err != nil {
			return err
		}
		return save(ctx, store, i, rest[1:], out)
	default:
		if len(rest) == 0 {
			return fmt.Errorf("%w: delete needs a slug", errUsage)
		}
		i, err := indexOf(store, rest[0])
		if err != nil {
			return err
		}
		if err := store.Remove(ctx, i); err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "deleted %s\n", rest[0])
		return err
	}
}

func login(ctx context.Context, api *adminstore.APIClient, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	email := fs.String("email", "", "admin email")
	password := fs.String("password", "", "admin password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	token, err := api.Login(ctx, *email, *password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	_, err = fmt.Fprintln(out, token)
	return err
}

// save creates a bundle, or edits bundle i, from the flags in args.
// When editing only the flags that were given change the form.
func save(ctx context.Context, store *adminstore.Store, i int, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("save", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	id := fs.String("id", "", "slug; derived from the name when empty")
	name := fs.String("name", "", "bundle name")
	description := fs.String("description", "", "bundle description")
	discount := fs.Float64("discount", 0, "discount percent (0-90)")
	fixed := fs.String("fixed", "", "fixed price; empty clears it")
	image := fs.String("image", "", "image file to embed as a data URL")
	var items itemList
	fs.Var(&items, "item", "category:keyword:productId, repeatable")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if i < 0 {
		store.StartCreate()
	} else if err := store.StartEdit(i); err != nil {
		return err
	}

	store.UpdateForm(func(f *adminstore.Form) {
		fs.Visit(func(fl *flag.Flag) {
			switch fl.Name {
			case "id":
				f.ID = *id
			case "name":
				f.Name = *name
			case "description":
				f.Description = *description
			case "discount":
				f.DiscountPercent = *discount
			case "fixed":
				f.FixedPrice = *fixed
			case "item":
				f.Items = items
			}
		})
	})

	if *image != "" {
		file, err := os.Open(*image)
		if err != nil {
			return err
		}
		err = store.AttachImage(file.Name(), file)
		_ = file.Close()
		if err != nil {
			return err
		}
	}

	slug := store.SlugPreview()
	if err := store.Commit(ctx); err != nil {
		return err
	}
	for _, b := range store.Bundles() {
		if b.ID == slug {
			return writeJSON(out, b)
		}
	}
	return nil
}

func indexOf(store *adminstore.Store, slug string) (int, error) {
	for i, b := range store.Bundles() {
		if b.ID == slug {
			return i, nil
		}
	}
	return -1, fmt.Errorf("bundle %q not found", slug)
}

// itemList parses repeated -item flags.
type itemList []model.BundleItem

func (l *itemList) String() string {
	if l == nil {
		return ""
	}
	parts := make([]string, 0, len(*l))
	for _, it := range *l {
		parts = append(parts, it.Category+":"+it.Keyword+":"+string(it.ProductID))
	}
	return strings.Join(parts, ",")
}

func (l *itemList) Set(v string) error {
	fields := strings.SplitN(v, ":", 3)
	for len(fields) < 3 {
		fields = append(fields, "")
	}
	*l = append(*l, model.BundleItem{
		Category:  strings.TrimSpace(fields[0]),
		Keyword:   strings.TrimSpace(fields[1]),
		ProductID: model.ParseProductID(strings.TrimSpace(fields[2])),
	})
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
