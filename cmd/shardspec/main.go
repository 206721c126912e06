// Package main provides the shardspec envelope inspection CLI.
package main

import (
	"fmt"
	"os"

	"github.com/ElijahHaga/tensorflow/serdes"
)

const version = "v0.1.0"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("shardspec %s\n", version)
			return
		case "inspect":
			if len(os.Args) < 3 {
				fmt.Fprintln(os.Stderr, "usage: shardspec inspect <envelope-file>")
				os.Exit(1)
			}
			if err := inspect(os.Args[2]); err != nil {
				fmt.Fprintf(os.Stderr, "shardspec: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	fmt.Println("shardspec - sharding descriptor envelope tool")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version          Show version")
	fmt.Println("  inspect <file>   Describe a serialized envelope")
}

// inspect prints the envelope header of a serialized sharding descriptor.
func inspect(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	env, err := serdes.UnmarshalEnvelope(b)
	if err != nil {
		return err
	}
	fmt.Printf("type:    %s\n", env.TypeName)
	fmt.Printf("version: %s\n", env.Version)
	fmt.Printf("payload: %d bytes\n", len(env.Data))
	return nil
}
