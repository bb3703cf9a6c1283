package main

import (
	"os"

	"douyin-downloader-go/cli"
)

func main() {
	os.Exit(cli.Execute())
}
