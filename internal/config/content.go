package config

// Feature keys used for channel and ping-role settings
const (
	FeatureWarm       = "warm"
	FeatureChill      = "chill"
	FeatureTypology   = "typology"
	FeatureCodePurple = "codepurple"
	FeatureChipDrop   = "chipdrop"
	FeatureWordGame   = "wordgame"
)

// Question categories in daily rotation order
const (
	CategoryWarm     = "warm"
	CategoryChill    = "chill"
	CategoryTypology = "typology"
)

// RotationOrder is the fixed cyclic order of daily question categories
var RotationOrder = []string{CategoryWarm, CategoryChill, CategoryTypology}

// ChipsName is the display name of the currency
const ChipsName = "chips"

// ChipsEmoji decorates every currency mention
const ChipsEmoji = "🥔"

// Question is one entry of a category bank. Kind is an optional
// sub-label shown above the question text.
type Question struct {
	Kind string
	Text string
}

// EmbedMeta styles the daily question embed for one category
type EmbedMeta struct {
	Title      string
	FooterText string
	Color      int
}

// QuestionEmbeds maps category to embed styling
var QuestionEmbeds = map[string]EmbedMeta{
	CategoryWarm:     {Title: "🔥 Daily Warm-Up", FooterText: "Drop your take below!", Color: 0xE67E22},
	CategoryChill:    {Title: "🌙 Chill Daily", FooterText: "No wrong answers here.", Color: 0x3498DB},
	CategoryTypology: {Title: "✨ Typology Daily", FooterText: "Which one are you?", Color: 0x9B59B6},
}

// WarmQuestions mixes would-you-rather, debate, and button dilemmas
var WarmQuestions = []Question{
	{Kind: "Would You Rather", Text: "Would you rather always be 10 minutes late or always 20 minutes early?"},
	{Kind: "Would You Rather", Text: "Would you rather lose your phone for a week or your wallet for a day?"},
	{Kind: "Would You Rather", Text: "Would you rather only eat your favorite meal forever or never eat it again?"},
	{Kind: "Would You Rather", Text: "Would you rather know how every movie ends or never see a spoiler again?"},
	{Kind: "Debate Time", Text: "Is a hotdog a sandwich? Defend your answer."},
	{Kind: "Debate Time", Text: "Texting back immediately: attentive or desperate?"},
	{Kind: "Debate Time", Text: "Cereal before milk or milk before cereal — and is the other way a crime?"},
	{Kind: "Debate Time", Text: "Is it worse to be boring or annoying?"},
	{Kind: "Press The Button", Text: "You get $10,000 right now, but you can never drink coffee again. Press it?"},
	{Kind: "Press The Button", Text: "You can skip sleep forever, but you also lose the ability to dream. Press it?"},
	{Kind: "Press The Button", Text: "You can read minds, but everyone knows you can. Press it?"},
	{Kind: "Press The Button", Text: "You never wait in line again, but your music taste becomes public knowledge. Press it?"},
}

// ChillQuestions are low-stakes lifestyle prompts
var ChillQuestions = []Question{
	{Text: "What's a small purchase that made your life way better?"},
	{Text: "What food could you eat every day without getting tired of it?"},
	{Text: "What's your go-to comfort show or movie?"},
	{Text: "Morning person or night owl — and has it ever changed?"},
	{Text: "What's a hobby you'd pick up if time and money didn't matter?"},
	{Text: "What song have you had on repeat lately?"},
	{Text: "What's the best meal you've had this year?"},
	{Text: "If you could live in any fictional world for a week, where are you going?"},
	{Text: "What's an unpopular opinion you'll stand by?"},
	{Text: "What's your ideal lazy Sunday?"},
}

// TypologyQuestions pair with two random type combos when posted
var TypologyQuestions = []Question{
	{Text: "Which of these two would win in a debate, and why?"},
	{Text: "Which one is more likely to ghost the group chat for a month?"},
	{Text: "Which one plans the trip, and which one just shows up?"},
	{Text: "Which one is secretly keeping the friend group together?"},
	{Text: "Which one would survive longer in a zombie apocalypse?"},
	{Text: "Which one sends the 3am existential texts?"},
	{Text: "Which one has 47 unfinished projects?"},
	{Text: "Which one remembers everyone's birthday without a reminder?"},
	{Text: "Which one argues with strangers online?"},
	{Text: "Which one would make the better villain?"},
}

// MBTITypes are the sixteen MBTI codes used for typology pairings
var MBTITypes = []string{
	"INTJ", "INTP", "ENTJ", "ENTP",
	"INFJ", "INFP", "ENFJ", "ENFP",
	"ISTJ", "ISFJ", "ESTJ", "ESFJ",
	"ISTP", "ISFP", "ESTP", "ESFP",
}

// EnneagramTypes are the nine enneagram labels used for typology pairings
var EnneagramTypes = []string{
	"1w2", "2w3", "3w4", "4w5", "5w6", "6w7", "7w8", "8w9", "9w1",
}

// CodePurpleMessages nudge a quiet server back to life
var CodePurpleMessages = []string{
	"💜 CODE PURPLE! This server has been quiet for way too long. Someone say something embarrassing.",
	"💜 CODE PURPLE! Dead chat detected. First person to reply gets bragging rights.",
	"💜 CODE PURPLE! It's so quiet in here I can hear the tumbleweeds. Revive us.",
	"💜 CODE PURPLE! Attention everyone: the chat needs you. Yes, you specifically.",
}

// DropAnnouncements format a grab drop: amount, emoji
var DropAnnouncements = []string{
	"🚨 CHIP DROP! **%d %s** up for grabs — first to claim wins!",
	"A wild stash of **%d %s** appeared! Quick, grab it!",
	"💰 Free chips! **%d %s** to whoever claims first!",
}

// DropMathAnnouncements format a math drop: amount, emoji, problem
var DropMathAnnouncements = []string{
	"🧮 CHIP DROP! **%d %s** to the first correct answer: what is **%s**?",
	"Math speedrun! **%d %s** for whoever solves **%s** first!",
}

// DropClaimedMessages format a claim: user mention, amount, emoji
var DropClaimedMessages = []string{
	"%s snagged **%d %s**! Lightning fast.",
	"%s claims the stash of **%d %s**! Better luck next time, everyone else.",
	"Gone! %s walks away with **%d %s**.",
}

// DropExpiredMessages replace a drop nobody claimed
var DropExpiredMessages = []string{
	"💨 The chips vanished into the void. Nobody claimed them in time.",
	"Too slow! The chip drop expired unclaimed.",
}

// GrabButtonLabel is the claim button on grab drops
const GrabButtonLabel = "Grab free chips 🥔"

// GrabKeyword claims a grab drop by message
const GrabKeyword = "grab"

// Chatter and activity reward templates
const (
	ChatterRewardHeader     = "🏆 **Daily Chatter Rewards!**"
	ChatterRewardTopLine    = "🥇 %s was today's top chatter and wins **%d %s**!"
	ChatterRewardSecondLine = "🥈 %s takes second place and wins **%d %s**!"
	ChatterRewardSoloLine   = "👑 %s carried the chat alone today and sweeps **%d %s**!"
	ChatterRewardNoActivity = "Nobody chatted today... the chips stay in the vault. 😴"
	ActivityRewardHeader    = "⚡ **Daily Activity Rewards!** (messages + voice minutes)"
	ActivityRewardLine      = "%s #%d: %s earns **%d %s**"
)

// Word game display strings
const (
	WordGameTitle        = "📖 One Word Story"
	WordGameTitleEnded   = "📖 The Completed Story"
	WordGameFooter       = "Add one word per message. Type END to finish the story."
	WordGameFooterEnded  = "words were written together"
	WordGameEmptyStory   = "*The page is blank. Add the first word!*"
	WordGameLastWordBy   = "Last word by"
	WordGameColor        = 0x2ECC71
	WordGameSameUserWarn = "%s You can't add two words in a row! Let someone else go."
)

// Balance and leaderboard strings
const (
	BalanceNoChips       = "You don't have any chips yet! Stay active to earn some. 🥔"
	BalanceResponse      = "You have **%d %s** %s (rank %s)"
	BalanceUnranked      = "unranked"
	LeaderboardTitle     = "🏆 Chip Leaderboard"
	LeaderboardEmpty     = "Nobody has chips yet. The leaderboard awaits its first legend."
	LeaderboardFooter    = "Earn chips by chatting, claiming drops, and hanging out in voice."
	LeaderboardColor     = 0xF1C40F
	LeaderboardEntryLine = "%s **#%d** %s — %d %s"
)

// RankEmojis decorate the top leaderboard rows
var RankEmojis = map[int]string{1: "🥇", 2: "🥈", 3: "🥉"}

// RankEmojiDefault is used beyond the decorated rows
const RankEmojiDefault = "🔹"
