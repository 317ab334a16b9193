// Command catalogctl is a terminal front end for the catalog API.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"catalog/pkg/catalogclient"

	flag "github.com/spf13/pflag"
)

const usage = `usage: catalogctl [--api URL] [--token TOKEN] <command> [flags]

commands:
  list                               show all products
  get <id>                           show one product
  create --name N --price P --image URL
  update <id> [--name N] [--price P] [--image URL]
  delete <id>
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("catalogctl", flag.ContinueOnError)
	global.SetOutput(stderr)
	global.SetInterspersed(false)
	apiURL := global.String("api", envDefault("CATALOG_API", "http://localhost:5000"), "catalog API base URL")
	token := global.String("token", os.Getenv("CATALOG_TOKEN"), "bearer token for write operations")
	global.Usage = func() { fmt.Fprint(stderr, usage) }
	if err := global.Parse(args); err != nil {
		return 2
	}
	rest := global.Args()
	if len(rest) == 0 {
		global.Usage()
		return 2
	}

	var opts []catalogclient.Option
	if *token != "" {
		opts = append(opts, catalogclient.WithToken(*token))
	}
	client := catalogclient.NewClient(*apiURL, opts...)
	v := &view{client: client, store: catalogclient.NewStore(client), out: stdout}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd, cmdArgs := rest[0], rest[1:]
	switch cmd {
	case "list":
		return v.list(ctx)
	case "get":
		return v.withID(cmdArgs, stderr, func(id string) int { return v.get(ctx, id) })
	case "create":
		form, _, ok := parseForm("create", cmdArgs, stderr)
		if !ok {
			return 2
		}
		return v.create(ctx, form)
	case "update":
		form, ids, ok := parseForm("update", cmdArgs, stderr)
		if !ok {
			return 2
		}
		return v.withID(ids, stderr, func(id string) int { return v.update(ctx, id, form) })
	case "delete":
		return v.withID(cmdArgs, stderr, func(id string) int { return v.delete(ctx, id) })
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", cmd)
		global.Usage()
		return 2
	}
}

func parseForm(name string, args []string, stderr io.Writer) (catalogclient.ProductForm, []string, bool) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	var form catalogclient.ProductForm
	fs.StringVar(&form.Name, "name", "", "product name")
	fs.StringVar(&form.Price, "price", "", "product price")
	fs.StringVar(&form.Image, "image", "", "product image URL")
	if err := fs.Parse(args); err != nil {
		return form, nil, false
	}
	return form, fs.Args(), true
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

type view struct {
	client *catalogclient.Client
	store  *catalogclient.Store
	out    io.Writer
}

func (v *view) withID(args []string, stderr io.Writer, fn func(string) int) int {
	if len(args) != 1 {
		fmt.Fprintln(stderr, "expected exactly one product id")
		return 2
	}
	return fn(args[0])
}

// toast prints a one-line notification and returns the matching exit code.
func (v *view) toast(res catalogclient.Result) int {
	if res.Success {
		fmt.Fprintf(v.out, "Success: %s\n", res.Message)
		return 0
	}
	fmt.Fprintf(v.out, "Error: %s\n", res.Message)
	keys := make([]string, 0, len(res.Fields))
	for k := range res.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(v.out, "  %s: %s\n", k, res.Fields[k])
	}
	return 1
}

func (v *view) list(ctx context.Context) int {
	res := v.store.FetchProducts(ctx)
	if !res.Success {
		return v.toast(res)
	}
	products := v.store.Products()
	if len(products) == 0 {
		fmt.Fprintln(v.out, "No products found.")
		return 0
	}
	tw := tabwriter.NewWriter(v.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tIMAGE")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%s\n", p.ID, p.Name, p.Price, p.Image)
	}
	tw.Flush()
	return 0
}

func (v *view) get(ctx context.Context, id string) int {
	p, err := v.client.GetProduct(ctx, id)
	if err != nil {
		fmt.Fprintf(v.out, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintf(v.out, "%s\n  name:  %s\n  price: %.2f\n  image: %s\n", p.ID, p.Name, p.Price, p.Image)
	return 0
}

func (v *view) create(ctx context.Context, form catalogclient.ProductForm) int {
	return v.toast(v.store.SubmitForm(ctx, form))
}

func (v *view) update(ctx context.Context, id string, form catalogclient.ProductForm) int {
	patch, errs := form.Patch()
	if len(errs) > 0 {
		return v.toast(catalogclient.Result{Message: "Please fill all fields correctly", Fields: errs})
	}
	return v.toast(v.store.UpdateProduct(ctx, id, patch))
}

func (v *view) delete(ctx context.Context, id string) int {
	return v.toast(v.store.DeleteProduct(ctx, id))
}
