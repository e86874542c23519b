/* main.go
 * The "main" method for running the tournament bot. For details about the bot see `readme.md`
 * Usage: go run main.go -addr="<listen addr>"
 * Authors: Zachary Bower
 */

package main

import (
	"context"
	"flag"
	"log"
	"os"

	"tournament-bot/api/api"
	"tournament-bot/api/external"
	"tournament-bot/api/shared"
	"tournament-bot/api/store"
	"tournament-bot/bot"
	"tournament-bot/web"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	err := godotenv.Load()

	//Flags
	addrPtr := flag.String("addr", ":8080", "Listen address for the match host webhook receiver")
	dbPtr := flag.String("db", "tournament", "Mongo database name")
	testPtr := flag.String("test", "false", "Use main or test bot: takes true or false as argument")

	flag.Parse()

	if err != nil {
		log.Fatal("Error loading .env file")
	}

	useTestBot, err := convertStrToBool(*testPtr)
	if err != nil {
		log.Fatal("Invalid \"test\" flag. Should be true or false")
	}
	discordToken := os.Getenv("DISCORD_PROD_TOKEN")
	if useTestBot {
		discordToken = os.Getenv("DISCORD_BETA_TOKEN")
	}

	api, err := api.NewAPI(*dbPtr, os.Getenv("MONGO_PROD_URI"), shared.FormatConfigFromEnv(), shared.MapPoolFromEnv())
	if err != nil {
		log.Fatalf("failed to initialize API: %v", err)
	}
	defer func() {
		if mongoStore, ok := api.Store.(*store.Store); ok {
			if err = mongoStore.Client.Disconnect(context.TODO()); err != nil {
				panic(err)
			}
		}
	}()

	// Match host bookings are optional; without credentials the bot still runs vetoes and
	// takes results through $result and never calls out
	if username := os.Getenv("DATHOST_USERNAME"); username != "" {
		client := external.NewClient(username, os.Getenv("DATHOST_PASSWORD"))
		api.MatchHost = external.NewSeriesHost(client, api.Store, os.Getenv("DATHOST_SERVER_ID"),
			os.Getenv("WEBHOOK_BASE_URL"), os.Getenv("WEBHOOK_AUTH"))
	}

	//Init bot and run alongside the webhook receiver
	tournamentBot, err := bot.NewBot(discordToken, api)
	if err != nil {
		log.Fatalf("failed to initialize bot: %v", err)
	}

	var group errgroup.Group
	group.Go(tournamentBot.Run)
	group.Go(func() error {
		return web.Start(web.Config{
			Addr:        *addrPtr,
			API:         api,
			WebhookAuth: os.Getenv("WEBHOOK_AUTH"),
		})
	})
	if err := group.Wait(); err != nil {
		log.Fatal(err)
	}
}
