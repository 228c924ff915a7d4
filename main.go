package main

import (
  "log"
  "os"
  "path"
  "path/filepath"

  "github.com/joho/godotenv"
  "github.com/urfave/cli/v2"

  "socialgraph.local/social-graph/commands"
)

func main() {
  if err := godotenv.Load(path.Join(filepath.Dir(os.Args[0]), ".env")); err != nil {
    dir, _ := os.Getwd()
    godotenv.Load(path.Join(dir, ".env"))
  }

  app := &cli.App{
    Name:  "social graph commands",
    Usage: "",
    Action: func(c *cli.Context) error {
      cli.ShowAppHelp(c)
      return nil
    },
    Commands: []*cli.Command{
      commands.NewDbCommand(),
      commands.NewFollowsCommand(),
      commands.NewTweetsCommand(),
      commands.NewTimelinesCommand(),
      commands.NewApiCommand(),
    },
    Version: "0.0.0",
  }

  err := app.Run(os.Args)
  if err != nil {
    log.Fatalln("error", err)
  }
}
