package main

import "github.com/killallgit/cardsheet-api/cmd"

// @title           Cardsheet API
// @version         1.0.0
// @description     Card search tables with field aliasing, multi-page retrieval and converted prices
// @contact.name    API Support
// @contact.url     https://github.com/killallgit/cardsheet-api
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
func main() {
	cmd.Execute()
}
