package wordgame

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/crispsgc/crisps-bot/internal/config"
	"github.com/crispsgc/crisps-bot/internal/models"
	"github.com/crispsgc/crisps-bot/internal/platform"
	wordgameRepo "github.com/crispsgc/crisps-bot/internal/repositories/wordgame"
)

// Define errors
var (
	ErrGameActive    = errors.New("a story is already in progress")
	ErrGameNotActive = errors.New("no story is in progress")
)

// endToken finishes the game when contributed (case-insensitive)
const endToken = "END"

// wordPattern accepts word characters plus light punctuation. Links and
// platform mention tokens cannot match it.
var wordPattern = regexp.MustCompile(`^[\w'.,!?;:-]+$`)

// service implements the Service interface
type service struct {
	gameRepo      wordgameRepo.Repository
	poster        platform.Poster
	maxWordLength int
}

// NewService creates a new word-game service
func NewService(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("cfg is required")
	}

	if cfg.GameRepo == nil {
		return nil, errors.New("cfg.GameRepo is required")
	}

	if cfg.Poster == nil {
		return nil, errors.New("cfg.Poster is required")
	}

	maxLen := cfg.MaxWordLength
	if maxLen <= 0 {
		maxLen = 30
	}

	return &service{
		gameRepo:      cfg.GameRepo,
		poster:        cfg.Poster,
		maxWordLength: maxLen,
	}, nil
}

// Start begins a fresh game. A second start while one is active is
// rejected without side effects.
func (s *service) Start(ctx context.Context, input *StartInput) (*StartOutput, error) {
	if input == nil {
		return nil, errors.New("input is required")
	}

	existing, err := s.gameRepo.Get(ctx, &wordgameRepo.GetInput{GuildID: input.GuildID})
	if err == nil && existing.Active {
		return nil, ErrGameActive
	}
	if err != nil && !errors.Is(err, wordgameRepo.ErrGameNotFound) {
		return nil, err
	}

	game := &models.WordGame{
		GuildID:   input.GuildID,
		ChannelID: input.ChannelID,
		Active:    true,
	}

	msg, err := s.poster.SendEmbed(ctx, input.ChannelID, "", s.displayEmbed(game))
	if err != nil {
		return nil, err
	}
	game.MessageID = msg.MessageID

	if err := s.gameRepo.Save(ctx, &wordgameRepo.SaveInput{Game: game}); err != nil {
		return nil, err
	}

	return &StartOutput{MessageID: msg.MessageID}, nil
}

// Contribute processes one chat message in the game channel. Invalid
// tokens are silently ignored so ordinary chat is not flagged.
func (s *service) Contribute(ctx context.Context, input *ContributeInput) (*ContributeOutput, error) {
	if input == nil {
		return nil, errors.New("input is required")
	}

	game, err := s.gameRepo.Get(ctx, &wordgameRepo.GetInput{GuildID: input.GuildID})
	if err != nil {
		if errors.Is(err, wordgameRepo.ErrGameNotFound) {
			return &ContributeOutput{Result: ResultIgnored}, nil
		}
		return nil, err
	}

	if !game.Active || game.ChannelID != input.ChannelID {
		return &ContributeOutput{Result: ResultIgnored}, nil
	}

	word := strings.TrimSpace(input.Content)
	if !s.validWord(word) {
		return &ContributeOutput{Result: ResultIgnored, WordCount: game.WordCount}, nil
	}

	if strings.EqualFold(word, endToken) {
		return s.finish(ctx, game, input.UserID)
	}

	if game.LastContributorID == input.UserID {
		return &ContributeOutput{Result: ResultRejectedSameUser, WordCount: game.WordCount}, nil
	}

	if game.Words == "" {
		game.Words = word
	} else {
		game.Words += " " + word
	}
	game.LastContributorID = input.UserID
	game.WordCount++

	// Replace the display so the story stays at the bottom of the channel
	_ = s.poster.DeleteMessage(ctx, &platform.Message{
		ChannelID: game.ChannelID,
		MessageID: game.MessageID,
	})

	msg, err := s.poster.SendEmbed(ctx, game.ChannelID, "", s.displayEmbed(game))
	if err != nil {
		return nil, err
	}
	game.MessageID = msg.MessageID

	if err := s.gameRepo.Save(ctx, &wordgameRepo.SaveInput{Game: game}); err != nil {
		return nil, err
	}

	return &ContributeOutput{Result: ResultAdded, WordCount: game.WordCount}, nil
}

// End finishes the active game from the command surface
func (s *service) End(ctx context.Context, input *EndInput) (*EndOutput, error) {
	if input == nil {
		return nil, errors.New("input is required")
	}

	game, err := s.gameRepo.Get(ctx, &wordgameRepo.GetInput{GuildID: input.GuildID})
	if err != nil {
		if errors.Is(err, wordgameRepo.ErrGameNotFound) {
			return nil, ErrGameNotActive
		}
		return nil, err
	}

	if !game.Active {
		return nil, ErrGameNotActive
	}

	out, err := s.finish(ctx, game, input.UserID)
	if err != nil {
		return nil, err
	}

	return &EndOutput{
		WordCount: out.WordCount,
		Story:     out.Story,
	}, nil
}

// View reports the current game state
func (s *service) View(ctx context.Context, input *ViewInput) (*ViewOutput, error) {
	if input == nil {
		return nil, errors.New("input is required")
	}

	game, err := s.gameRepo.Get(ctx, &wordgameRepo.GetInput{GuildID: input.GuildID})
	if err != nil {
		if errors.Is(err, wordgameRepo.ErrGameNotFound) {
			return &ViewOutput{}, nil
		}
		return nil, err
	}

	return &ViewOutput{
		Active:     game.Active,
		ChannelID:  game.ChannelID,
		WordCount:  game.WordCount,
		Transcript: game.Words,
		Story:      RenderStory(game.Words),
	}, nil
}

// finish deactivates the game and posts the completed story
func (s *service) finish(ctx context.Context, game *models.WordGame, endedBy string) (*ContributeOutput, error) {
	game.Active = false

	story := RenderStory(game.Words)

	_ = s.poster.DeleteMessage(ctx, &platform.Message{
		ChannelID: game.ChannelID,
		MessageID: game.MessageID,
	})

	content := fmt.Sprintf("📖 The story is over! (%d words total.)", game.WordCount)
	if endedBy != "" {
		content = fmt.Sprintf("📖 <@%s> ended the story! (%d words total.)", endedBy, game.WordCount)
	}

	msg, err := s.poster.SendEmbed(ctx, game.ChannelID, content, s.finalEmbed(game, story))
	if err != nil {
		return nil, err
	}
	game.MessageID = msg.MessageID

	if err := s.gameRepo.Save(ctx, &wordgameRepo.SaveInput{Game: game}); err != nil {
		return nil, err
	}

	return &ContributeOutput{
		Result:    ResultEnded,
		WordCount: game.WordCount,
		Story:     story,
	}, nil
}

// validWord checks a trimmed contribution: one token, bounded length,
// word and light punctuation characters only
func (s *service) validWord(word string) bool {
	if word == "" || utf8.RuneCountInString(word) > s.maxWordLength {
		return false
	}
	if len(strings.Fields(word)) != 1 {
		return false
	}
	return wordPattern.MatchString(word)
}

func (s *service) displayEmbed(game *models.WordGame) *platform.Embed {
	description := config.WordGameEmptyStory
	if game.Words != "" {
		description = game.Words
	}

	return &platform.Embed{
		Title:       config.WordGameTitle,
		Description: description,
		FooterText:  config.WordGameFooter,
		Color:       config.WordGameColor,
	}
}

func (s *service) finalEmbed(game *models.WordGame, story string) *platform.Embed {
	description := config.WordGameEmptyStory
	if story != "" {
		description = story
	}

	return &platform.Embed{
		Title:       config.WordGameTitleEnded,
		Description: description,
		FooterText:  fmt.Sprintf("%d %s", game.WordCount, config.WordGameFooterEnded),
		Color:       config.WordGameColor,
	}
}

// RenderStory turns the raw token transcript into readable text:
// tokens are lower-cased, pure-punctuation tokens attach to the word
// before them, and sentence starts are capitalized.
func RenderStory(transcript string) string {
	tokens := strings.Fields(transcript)
	if len(tokens) == 0 {
		return ""
	}

	var b strings.Builder
	sentenceStart := true
	for i, token := range tokens {
		token = strings.ToLower(token)

		if i > 0 && isPunctuation(token) {
			b.WriteString(token)
			sentenceStart = endsSentence(token)
			continue
		}

		if i > 0 {
			b.WriteString(" ")
		}
		if sentenceStart {
			token = capitalize(token)
			sentenceStart = false
		}
		b.WriteString(token)
	}

	return b.String()
}

func capitalize(token string) string {
	first, size := utf8.DecodeRuneInString(token)
	if first == utf8.RuneError {
		return token
	}
	return string(unicode.ToUpper(first)) + token[size:]
}

func isPunctuation(token string) bool {
	for _, r := range token {
		if !unicode.IsPunct(r) {
			return false
		}
	}
	return true
}

func endsSentence(token string) bool {
	return strings.ContainsAny(token, ".!?")
}
