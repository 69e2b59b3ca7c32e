package assistant

// EmptyCommandReply answers empty or whitespace-only input.
const EmptyCommandReply = "Hello! How can I help you today?"

// Suffixes marking a create reply whose row was not stored.
const (
	unsavedStorage   = "database temporarily unavailable"
	unsavedAnonymous = "sign in to keep it"
)

// Usage hints.
const (
	hintReminderWhen   = "Please specify when to remind you, like 'remind me to call mom in 30 minutes'."
	hintReminderFormat = "Please specify the reminder in the format: 'Set a reminder to [task] in [time] [unit]'."
	hintReminderTask   = "What would you like to be reminded about? Try: 'remind me to call mom in 30 minutes'."
	hintTodo           = "What would you like to add to your to-do list?"
	hintShopping       = "What would you like to add to your shopping list? Try: 'add bread and milk to shopping list'"
	hintTopic          = "What would you like me to look up? Try: 'search black holes'."
	hintMedia          = "What would you like me to play? Try: 'play bohemian rhapsody'."
	hintTimer          = "Please specify the timer duration, like 'start a 5 minute timer'."
	hintMath           = "Please provide a math expression like '15 + 25', '10 * 5', or '15% of 100'."
	failMath           = "Sorry, I couldn't calculate that. Please try a simpler math expression like '15 + 25'."
	hintNote           = "What would you like to note down?"
	hintSearch         = "**Web Search Ready!**\n\nWhat would you like me to search for?\n\nExamples:\n• 'search artificial intelligence'\n• 'what is blockchain'\n• 'find information about space exploration'\n• 'tell me about renewable energy'"
)

// Service replies.
const (
	newsNotConfigured    = "News feature requires API key setup. Please add NEWS_API_KEY to your environment variables."
	newsUnavailable      = "Unable to fetch news at the moment. Please try again later."
	newsEmpty            = "No news articles found at the moment."
	weatherNotConfigured = "Weather API key not configured. Please set WEATHER_API_KEY in environment variables."
	weatherRejected      = "Weather API key was rejected. Please check WEATHER_API_KEY."
	weatherUnreachable   = "Unable to connect to weather service. Please check your internet connection."
	weatherFailed        = "Error getting weather data. Please try again later."
	encyclopediaFailed   = "Sorry, I couldn't reach Wikipedia right now. Please try again later."
	searchTimeout        = "Search request timed out. Please try again with a shorter query."
	searchUnavailable    = "Search service temporarily unavailable. Please try again in a moment."
	searchUnreachable    = "Unable to connect to search service. Check your internet connection."
	searchNoDetail       = "Found some results but no detailed information available. Try a more specific search term."
	searchNothing        = "No detailed information found. Try:\n• Being more specific\n• Using different keywords\n• Checking spelling\n\nExample: 'search Python programming' or 'what is machine learning'"
)

const (
	habitReply    = "Habit tracking feature coming soon! I'll help you build and maintain healthy habits."
	calendarReply = "Calendar integration coming soon! I'll be able to manage your schedule and appointments."
)

const capabilitiesReply = `🤖 **I'm Darek, your AI assistant! Here's what I can do:**

📅 **Productivity:** Set reminders, create notes, manage to-do lists, start timers
🧮 **Calculator:** Solve math problems, percentages, complex calculations
🌤️ **Weather:** Get current weather for any city
📰 **News:** Latest headlines and news updates
🔍 **Web Search:** Search the internet for information
🎵 **Entertainment:** Tell jokes, share trivia, play music
📝 **Organization:** Shopping lists, habit tracking
💬 **Chat:** Have normal conversations - I'm here to help and chat!

Just ask me naturally like "What's the weather in Paris?" or "Calculate 15% of 200" or even just say hi! 😊`

var greetingReplies = []string{
	"Hello! 👋 I'm Darek, your AI assistant. How can I help you today?",
	"Hi there! 😊 Ready to assist you with anything you need!",
	"Hey! 🌟 What can I do for you today?",
	"Hello! Great to see you! How can I make your day better?",
}

var howAreYouReplies = []string{
	"I'm doing fantastic! Ready to help you with anything you need. 😊",
	"I'm great, thank you for asking! How can I assist you today?",
	"Doing wonderful! I'm here and ready to help with your tasks.",
}

var thanksReplies = []string{
	"You're very welcome! 😊 Happy to help anytime!",
	"My pleasure! 🌟 Let me know if you need anything else!",
	"Glad I could help! 💫 Feel free to ask me anything!",
}

var farewellReplies = []string{
	"Goodbye! 👋 Have a wonderful day!",
	"See you later! 😊 Take care!",
	"Bye! 🌟 Come back anytime you need help!",
}

var fallbackReplies = []string{
	"I'm not sure I understand that completely. Could you try rephrasing? I can help with weather, calculations, reminders, notes, web searches, or just chat! 😊",
	"Hmm, I didn't quite catch that. I'm here to help with various tasks or just have a conversation. What would you like to do?",
	"I'm still learning! 🤖 Could you be more specific? I can assist with productivity tasks, answer questions, or just chat with you!",
	"That's interesting! I might need a bit more context. Feel free to ask me about weather, math, reminders, or anything else on your mind! 💭",
}

var triviaReplies = []string{
	"🧠 Here's a trivia question: What is the largest planet in our solar system? (Answer: Jupiter)",
	"🧠 Trivia time: Which element has the chemical symbol 'Au'? (Answer: Gold)",
	"🧠 Quick question: What year did the Titanic sink? (Answer: 1912)",
	"🧠 Brain teaser: How many continents are there? (Answer: 7)",
	"🧠 Fun fact question: What's the fastest land animal? (Answer: Cheetah)",
}

var jokes = []string{
	"Why don't scientists trust atoms? Because they make up everything!",
	"There are only 10 kinds of people in this world: those who know binary and those who don't.",
	"A SQL query walks into a bar, walks up to two tables and asks, 'Can I join you?'",
	"Why do programmers prefer dark mode? Because light attracts bugs.",
	"I would tell you a UDP joke, but you might not get it.",
	"Why did the developer go broke? Because he used up all his cache.",
}

// Variants returns copies of the canned reply sets, keyed by name.
func Variants() map[string][]string {
	cp := func(s []string) []string { return append([]string(nil), s...) }
	return map[string][]string{
		"greeting":    cp(greetingReplies),
		"how_are_you": cp(howAreYouReplies),
		"thanks":      cp(thanksReplies),
		"farewell":    cp(farewellReplies),
		"fallback":    cp(fallbackReplies),
		"trivia":      cp(triviaReplies),
		"joke":        cp(jokes),
	}
}
