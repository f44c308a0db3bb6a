// ABOUTME: Built-in intent catalog used when no config file supplies one.
// ABOUTME: Covers greetings, small talk, time/date, jokes, notes, favorites, and math.

package intent

// Action tags understood by the builtin catalog. The action registry owns
// the canonical tag list; these mirror its names.
const (
	actionStoreUserName     = "store_user_name"
	actionStoreUserBirthday = "store_user_birthday"
	actionStoreUserNote     = "store_user_note"
	actionShowUserNotes     = "show_user_notes"
	actionAddFavorites      = "add_favorites"
	actionCalculate         = "calculate"
)

// Builtin returns the built-in intent definitions in declaration order.
// The slice is freshly allocated on each call.
func Builtin() []Definition {
	return []Definition{
		{
			Name: "greeting",
			Patterns: []string{
				`\b(hi|hello|hey|greetings|howdy|hola)\b`,
				`^(hi|hello|hey)$`,
			},
			Keywords: []string{"hi", "hello", "hey", "greetings"},
			Responses: []string{
				"Hello! Welcome! How can I assist you today?",
				"Hey there! Great to see you. What can I help with?",
				"Hi! I'm {bot_name}, ready to chat. What's on your mind?",
			},
		},
		{
			Name: "farewell",
			Patterns: []string{
				`\b(bye|goodbye|see you|farewell|quit|exit)\b`,
				`^(bye|quit|exit)$`,
			},
			Keywords: []string{"bye", "goodbye", "quit", "exit"},
			Responses: []string{
				"Goodbye! It was great chatting with you!",
				"See you later! Take care!",
				"Farewell! Come back anytime you want to chat!",
			},
		},
		{
			Name: "ask_bot_name",
			Patterns: []string{
				`what('s| is) your name`,
				`who are you`,
				`your name\??`,
			},
			Keywords: []string{"name", "who", "called"},
			Responses: []string{
				"I'm {bot_name}, your AI assistant!",
				"You can call me {bot_name}. Nice to meet you!",
				"My name is {bot_name}. How can I help?",
			},
		},
		{
			Name: "user_name",
			Patterns: []string{
				`my name is (\w+)`,
				`i'm (\w+)`,
				`call me (\w+)`,
				`i am (\w+)`,
			},
			Keywords: []string{"name", "call", "am"},
			Responses: []string{
				"Nice to meet you, {user_name}! How can I help you today?",
				"Hello {user_name}! Great to have you here.",
				"Welcome, {user_name}! What would you like to chat about?",
			},
			ActionType: actionStoreUserName,
		},
		{
			Name: "how_are_you",
			Patterns: []string{
				`how are you`,
				`how('s| is) it going`,
				`how do you feel`,
				`you doing\??`,
			},
			Keywords: []string{"how", "feeling", "doing"},
			Responses: []string{
				"I'm doing great, thanks for asking! How about you?",
				"I'm excellent! Ready to help with whatever you need.",
				"Feeling fantastic! What can I do for you today?",
			},
			ContextSet: "asked_user_feeling",
		},
		{
			Name: "user_feeling_good",
			Patterns: []string{
				`i('m| am) (good|great|fine|okay|excellent|happy)`,
				`(good|great|fine|excellent|happy)$`,
				`doing (well|good|great)`,
			},
			Keywords: []string{"good", "great", "fine", "happy", "well"},
			Responses: []string{
				"Wonderful to hear! What would you like to talk about?",
				"That's great! Is there anything I can help you with?",
				"Awesome! I'm glad you're doing well.",
			},
			ContextRequired: "asked_user_feeling",
		},
		{
			Name: "ask_time",
			Patterns: []string{
				`what time is it`,
				`what('s| is) the time`,
				`current time`,
				`tell me the time`,
			},
			Keywords: []string{"time", "clock"},
			Responses: []string{
				"It's currently {current_time}.",
				"The time is {current_time}.",
				"Right now it's {current_time}.",
			},
		},
		{
			Name: "ask_date",
			Patterns: []string{
				`what('s| is) the date`,
				`what day is it`,
				`today('s)? date`,
				`current date`,
			},
			Keywords: []string{"date", "day", "today"},
			Responses: []string{
				"Today is {current_date}.",
				"It's {current_date}.",
				"The date is {current_date}.",
			},
		},
		{
			Name: "help",
			Patterns: []string{
				`\bhelp\b`,
				`what can you do`,
				`capabilities`,
				`features`,
			},
			Keywords: []string{"help", "assist", "capabilities"},
			Responses: []string{
				`Here's what I can help with:

• **Conversation**: Just chat with me about anything!
• **Time & Date**: Ask me what time or date it is
• **Jokes**: I know a few programming jokes
• **Remember Your Name**: Tell me your name, I'll remember it
• **Notes & Favorites**: I can save notes and favorites for you
• **Calculations**: Ask me to calculate something
• **Fun Facts**: Ask me for a random fact

Just type naturally and I'll do my best to understand!`,
			},
		},
		{
			Name: "jokes",
			Patterns: []string{
				`tell (me )?a joke`,
				`joke`,
				`make me laugh`,
				`something funny`,
			},
			Keywords: []string{"joke", "funny", "laugh", "humor"},
			Responses: []string{
				"Why do programmers prefer dark mode? Because light attracts bugs! 🐛",
				"Why did the developer go broke? Because he used up all his cache! 💰",
				"A SQL query walks into a bar, approaches two tables, and asks... 'Can I join you?'",
				"Why do Java developers wear glasses? Because they can't C#! 👓",
				"There are only 10 types of people: those who understand binary and those who don't.",
				"Why was the JavaScript developer sad? Because he didn't Node how to Express himself!",
				"What's a programmer's favorite hangout place? Foo Bar! 🍺",
			},
		},
		{
			Name: "thanks",
			Patterns: []string{
				`thank(s| you)`,
				`thx`,
				`appreciate it`,
				`you('re| are) helpful`,
			},
			Keywords: []string{"thanks", "thank", "appreciate"},
			Responses: []string{
				"You're welcome! Happy to help! 😊",
				"Anytime! That's what I'm here for.",
				"Glad I could assist!",
				"My pleasure! Let me know if you need anything else.",
			},
		},
		{
			Name: "calculate",
			Patterns: []string{
				`calculate (.+)`,
				`what('s| is) (\d+[\s]*[\+\-\*\/][\s]*\d+)`,
				`(\d+[\s]*[\+\-\*\/][\s]*\d+)`,
			},
			Keywords:   []string{"calculate", "math", "+", "-", "*", "/"},
			Responses:  []string{"Let me calculate that..."},
			ActionType: actionCalculate,
		},
		{
			Name: "fun_fact",
			Patterns: []string{
				`(tell me )?(a )?fun fact`,
				`random fact`,
				`interesting fact`,
				`did you know`,
			},
			Keywords: []string{"fact", "interesting", "random"},
			Responses: []string{
				"🎯 Fun fact: Honey never spoils! Archaeologists found 3000-year-old honey in Egyptian tombs that was still perfectly edible.",
				"🎯 Fun fact: Octopuses have three hearts and blue blood!",
				"🎯 Fun fact: The first computer programmer was Ada Lovelace, who wrote algorithms for Charles Babbage's Analytical Engine in the 1840s.",
				"🎯 Fun fact: A group of flamingos is called a 'flamboyance'!",
				"🎯 Fun fact: The shortest war in history lasted 38-45 minutes (between Britain and Zanzibar in 1896).",
				"🎯 Fun fact: Python is named after Monty Python, not the snake!",
			},
		},
		{
			Name: "about",
			Patterns: []string{
				`tell me about yourself`,
				`who made you`,
				`what are you`,
				`are you (a )?(robot|ai|bot)`,
			},
			Keywords: []string{"about", "yourself", "made", "created"},
			Responses: []string{
				"I'm {bot_name}, a rule-based chatbot! I can have conversations, tell jokes, remember your name, and help with simple tasks. I'm always learning to be more helpful!",
				"I'm a chatbot named {bot_name}. I was created to demonstrate pattern-matching conversation techniques. Feel free to test my capabilities!",
			},
		},
		{
			Name: "remember_birthday",
			Patterns: []string{
				`my birthday is (.+)`,
				`i was born on (.+)`,
			},
			Keywords: []string{"birthday", "born"},
			Responses: []string{
				"Got it! I'll remember your birthday is {user_birthday}.",
				"Thanks! I've noted your birthday: {user_birthday}.",
			},
			ActionType: actionStoreUserBirthday,
		},
		{
			Name: "save_note",
			Patterns: []string{
				`remember that (.+)`,
				`take a note:? (.+)`,
				`note to self:? (.+)`,
			},
			Keywords: []string{"remember", "note"},
			Responses: []string{
				"Noted! I'll keep that in mind.",
				"Got it, saved to your notes.",
				"Written down!",
			},
			ActionType: actionStoreUserNote,
		},
		{
			Name: "show_notes",
			Patterns: []string{
				`show (me )?(my )?notes`,
				`what are my notes`,
				`list my notes`,
			},
			Keywords:   []string{"notes"},
			Responses:  []string{"Let me check your notes..."},
			ActionType: actionShowUserNotes,
		},
		{
			Name: "favorite",
			Patterns: []string{
				`my favou?rite (\w+) is (.+)`,
			},
			Keywords: []string{"favorite", "favourite"},
			Responses: []string{
				"Nice! I'll remember that.",
				"Great choice! I've saved that as a favorite.",
				"Good taste! Noted.",
			},
			ActionType: actionAddFavorites,
		},
	}
}
