package session

import (
	"pictriage/internal/config"
)

// KeyCommand translates a pressed key into a Command using the configured
// binds. Matching is case-sensitive. The hardware delete and backspace keys
// always map to the reserved "deleted" category, regardless of what the
// document configures.
func KeyCommand(cfg *config.Config, key string) (Command, bool) {
	switch key {
	case "delete", "backspace":
		return Command{Kind: CmdCategorize, Category: config.DeletedCategory}, true
	}

	switch key {
	case cfg.Keybinds[config.ActionQuit]:
		return Command{Kind: CmdQuit}, true
	case cfg.Keybinds[config.ActionNext]:
		return Command{Kind: CmdNext}, true
	case cfg.Keybinds[config.ActionPrevious]:
		return Command{Kind: CmdPrevious}, true
	case cfg.Keybinds[config.ActionRotateCW]:
		return Command{Kind: CmdRotateCW}, true
	case cfg.Keybinds[config.ActionRotateCCW]:
		return Command{Kind: CmdRotateCCW}, true
	case cfg.Keybinds[config.ActionCustomName]:
		return Command{Kind: CmdPromptCustomName}, true
	}

	for category, bind := range cfg.Categories {
		if category == config.DeletedCategory {
			continue
		}
		if key == bind {
			return Command{Kind: CmdCategorize, Category: category}, true
		}
	}
	return Command{}, false
}
