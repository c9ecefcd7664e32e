package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	wirefield "github.com/reoring/wirefield"
	"github.com/reoring/wirefield/schemafile"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "check":
		checkCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "wirefield CLI\n\nUsage:\n  wirefield check -schema schema.yaml -type TypeName doc.json [doc2.json ...]\n\nNotes:\n  - Decodes each JSON document against the named type and reports issues.")
}

func checkCmd(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	var schemaPath string
	var typeName string
	fs.StringVar(&schemaPath, "schema", "", "YAML schema file declaring the types")
	fs.StringVar(&typeName, "type", "", "name of the declared type to decode against")
	_ = fs.Parse(args)
	if schemaPath == "" || typeName == "" || fs.NArg() == 0 {
		fs.Usage()
		os.Exit(2)
	}

	reg := wirefield.NewRegistry()
	if err := schemafile.LoadFile(reg, schemaPath); err != nil {
		fatalf("loading schema: %v", err)
	}
	t, err := reg.TypeByName(typeName)
	if err != nil {
		fatalf("%v", err)
	}

	ctx := context.Background()
	failed := 0
	for _, path := range fs.Args() {
		b, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed++
			continue
		}
		if _, err := wirefield.FromJSON(ctx, t, b); err != nil {
			if iss, ok := wirefield.AsIssues(err); ok {
				for _, it := range iss {
					fmt.Fprintf(os.Stderr, "%s: %s at %s: %s\n", path, it.Code, it.Path, it.Message)
				}
			} else {
				fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			}
			failed++
			continue
		}
		fmt.Printf("%s: ok\n", path)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
