package main

import "linkedin-scraper/cmd/scraper/cmd"

func main() {
	cmd.Execute()
}
