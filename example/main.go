// Example usage of the specify package.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Qqwy/specify"
)

// ServerConfig receives the resolved record via Scan.
type ServerConfig struct {
	Host     string   `config:"host"`
	Port     int      `config:"port"`
	Debug    bool     `config:"debug"`
	LogLevel string   `config:"log_level"`
	Backends []string `config:"backends"`
}

func main() {
	specify.RegisterAtoms("debug", "info", "warn", "error")

	schema := specify.New("example.server").
		Field("host", specify.Named("string"), specify.Default("localhost"),
			specify.Doc("Interface the server binds to.")).
		Field("port", specify.Named("integer"),
			specify.Doc("TCP port; required.")).
		Field("debug", specify.Named("boolean"), specify.Default(false)).
		Field("log_level", specify.Named("atom"), specify.Default(specify.Atom("info")),
			specify.EnvName("EXAMPLE_LOG_LEVEL")).
		Field("backends", specify.List(specify.Named("string")), specify.Default([]any{})).
		WithSources(
			specify.FromFile("example.toml"),
			specify.FromEnv("EXAMPLE_"),
		).
		MustBuild()

	rec, err := specify.Load(schema, specify.LoadOptions{
		Values: map[string]any{"port": 8080},
	})
	if err != nil {
		log.Fatal(err)
	}

	var cfg ServerConfig
	if err := rec.Scan(&cfg); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("resolved: %+v\n", cfg)

	// Explain mode shows every candidate per field, in ascending
	// precedence, without parsing anything.
	candidates, err := specify.Explain(schema, specify.LoadOptions{
		Values: map[string]any{"port": "9090"},
	})
	if err != nil {
		log.Fatal(err)
	}
	for field, list := range candidates {
		fmt.Fprintf(os.Stdout, "%-10s %v\n", field, list)
	}
}
