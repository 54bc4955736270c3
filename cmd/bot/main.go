package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/crispsgc/crisps-bot/internal/common/clock"
	"github.com/crispsgc/crisps-bot/internal/common/uuid"
	"github.com/crispsgc/crisps-bot/internal/config"
	"github.com/crispsgc/crisps-bot/internal/handlers/discord"
	"github.com/crispsgc/crisps-bot/internal/random"
	activityRepo "github.com/crispsgc/crisps-bot/internal/repositories/activity"
	dropRepo "github.com/crispsgc/crisps-bot/internal/repositories/drop"
	ledgerRepo "github.com/crispsgc/crisps-bot/internal/repositories/ledger"
	questionRepo "github.com/crispsgc/crisps-bot/internal/repositories/question"
	stateRepo "github.com/crispsgc/crisps-bot/internal/repositories/state"
	userRepo "github.com/crispsgc/crisps-bot/internal/repositories/user"
	wordgameRepo "github.com/crispsgc/crisps-bot/internal/repositories/wordgame"
	"github.com/crispsgc/crisps-bot/internal/services/economy"
	"github.com/crispsgc/crisps-bot/internal/services/questions"
	"github.com/crispsgc/crisps-bot/internal/services/scheduler"
	"github.com/crispsgc/crisps-bot/internal/services/wordgame"
)

func main() {
	// Load .env if present; real deployments use the environment
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("Failed to load timezone %q: %v", cfg.Timezone, err)
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Initialize repositories
	users, err := userRepo.NewRedis(&userRepo.Config{RedisClient: redisClient})
	if err != nil {
		log.Fatalf("Failed to create user repository: %v", err)
	}

	activity, err := activityRepo.NewRedis(&activityRepo.Config{RedisClient: redisClient})
	if err != nil {
		log.Fatalf("Failed to create activity repository: %v", err)
	}

	drops, err := dropRepo.NewRedis(&dropRepo.Config{RedisClient: redisClient})
	if err != nil {
		log.Fatalf("Failed to create drop repository: %v", err)
	}

	ledger, err := ledgerRepo.NewRedis(&ledgerRepo.Config{RedisClient: redisClient})
	if err != nil {
		log.Fatalf("Failed to create ledger repository: %v", err)
	}

	questionsRepo, err := questionRepo.NewRedis(&questionRepo.Config{RedisClient: redisClient})
	if err != nil {
		log.Fatalf("Failed to create question repository: %v", err)
	}

	games, err := wordgameRepo.NewRedis(&wordgameRepo.Config{RedisClient: redisClient})
	if err != nil {
		log.Fatalf("Failed to create word game repository: %v", err)
	}

	state, err := stateRepo.NewRedis(&stateRepo.Config{RedisClient: redisClient})
	if err != nil {
		log.Fatalf("Failed to create state repository: %v", err)
	}

	// Bring stored state up to the current schema
	if err := state.Migrate(context.Background()); err != nil {
		log.Fatalf("Failed to run state migrations: %v", err)
	}

	// Create the Discord session shared by the poster and the bot
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		log.Fatalf("Failed to create Discord session: %v", err)
	}

	poster, err := discord.NewPoster(session)
	if err != nil {
		log.Fatalf("Failed to create poster: %v", err)
	}

	picker := random.New(nil)

	// Initialize services
	questionsSvc, err := questions.NewService(&questions.Config{
		QuestionRepo: questionsRepo,
		Picker:       picker,
	})
	if err != nil {
		log.Fatalf("Failed to create questions service: %v", err)
	}

	economySvc, err := economy.NewService(&economy.Config{
		UserRepo:      users,
		ActivityRepo:  activity,
		DropRepo:      drops,
		LedgerRepo:    ledger,
		StateRepo:     state,
		Poster:        poster,
		Picker:        picker,
		Clock:         &clock.DefaultClock{},
		UUIDGenerator: uuid.New(),
		Location:      location,
	})
	if err != nil {
		log.Fatalf("Failed to create economy service: %v", err)
	}

	wordGameSvc, err := wordgame.NewService(&wordgame.Config{
		GameRepo: games,
		Poster:   poster,
	})
	if err != nil {
		log.Fatalf("Failed to create word game service: %v", err)
	}

	schedulerSvc, err := scheduler.NewService(&scheduler.Config{
		StateRepo: state,
		Questions: questionsSvc,
		Economy:   economySvc,
		Poster:    poster,
		Picker:    picker,
		Location:  location,
	})
	if err != nil {
		log.Fatalf("Failed to create scheduler service: %v", err)
	}

	// Initialize Discord bot
	bot, err := discord.New(&discord.Config{
		Session:       session,
		ApplicationID: cfg.ApplicationID,
		GuildID:       cfg.GuildID,
		Economy:       economySvc,
		WordGame:      wordGameSvc,
		Scheduler:     schedulerSvc,
		Questions:     questionsSvc,
		StateRepo:     state,
	})
	if err != nil {
		log.Fatalf("Failed to create Discord bot: %v", err)
	}

	// Start the bot
	if err := bot.Start(); err != nil {
		log.Fatalf("Failed to start Discord bot: %v", err)
	}

	// Minute ticker drives the question rotation, Code Purple,
	// rewards, and the drop lifecycle
	ticker := cron.New()
	_, err = ticker.AddFunc("@every 1m", func() {
		now := time.Now()
		tickCtx, tickCancel := context.WithTimeout(context.Background(), 50*time.Second)
		defer tickCancel()

		guildIDs := connectedGuilds(session, cfg.GuildID)

		if _, err := schedulerSvc.Tick(tickCtx, &scheduler.TickInput{
			GuildIDs: guildIDs,
			Now:      now,
		}); err != nil {
			log.Printf("Scheduler tick failed: %v", err)
		}

		for _, guildID := range guildIDs {
			if _, err := economySvc.HandleDropTick(tickCtx, &economy.HandleDropTickInput{
				GuildID: guildID,
				Now:     now,
			}); err != nil {
				log.Printf("Drop tick failed for guild %s: %v", guildID, err)
			}
		}
	})
	if err != nil {
		log.Fatalf("Failed to schedule ticker: %v", err)
	}
	ticker.Start()

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	ticker.Stop()

	if err := bot.Stop(); err != nil {
		log.Printf("Error stopping bot: %v", err)
	}

	log.Println("Bot has been shut down")
}

// connectedGuilds lists the guilds to tick. A configured guild ID wins;
// otherwise every guild the session is in gets a tick.
func connectedGuilds(session *discordgo.Session, configured string) []string {
	if configured != "" {
		return []string{configured}
	}

	guilds := session.State.Guilds
	ids := make([]string, 0, len(guilds))
	for _, guild := range guilds {
		ids = append(ids, guild.ID)
	}
	return ids
}
