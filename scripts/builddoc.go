// Copyright 2021 Silvio Böhler
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"os"
	"strings"
	"text/template"

	"github.com/coinjar/coinjar/cmd"
)

type config struct {
	ExampleFile string
	Commands    map[string]string
}

func main() {
	c, err := createConfig()
	if err != nil {
		panic(err)
	}
	err = generate(c)
	if err != nil {
		panic(err)
	}
}

func createConfig() (*config, error) {
	var c = &config{
		Commands: make(map[string]string),
	}
	content, err := os.ReadFile("doc/example.journal")
	if err != nil {
		return nil, err
	}
	c.ExampleFile = string(content)

	c.Commands["Help"] = run([]string{"--help"})
	c.Commands["HelpSplit"] = run([]string{"split", "--help"})
	c.Commands["Accounts"] = run([]string{"accounts", "doc/example.journal"})
	c.Commands["Contacts"] = run([]string{"accounts", "--contacts", "doc/example.journal"})
	c.Commands["Register"] = run([]string{"register",
		"--color=false", "-a", "checking", "doc/example.journal",
	})
	c.Commands["Daily"] = run([]string{"daily",
		"--color=false", "-a", "checking", "--from", "2021-01-01", "--to", "2021-01-05", "doc/example.journal",
	})
	c.Commands["Income"] = run([]string{"income", "--color=false", "doc/example.journal"})
	c.Commands["Total"] = run([]string{"total", "-a", "food", "doc/example.journal"})
	return c, nil
}

func generate(c *config) error {
	tpl, err := template.ParseFiles("doc/README.md")
	if err != nil {
		return err
	}
	if err = tpl.Execute(os.Stdout, c); err != nil {
		return err
	}
	return nil
}

func run(args []string) string {
	var c = cmd.CreateRootCmd("development")
	c.SetArgs(args)
	var b strings.Builder
	b.WriteString("$ coinjar")
	for _, a := range args {
		b.WriteRune(' ')
		b.WriteString(a)
	}
	b.WriteRune('\n')
	c.SetOut(&b)
	c.Execute()
	return b.String()
}
