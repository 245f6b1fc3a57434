package dice

import (
	"slices"
)

// Example categories
const (
	ExampleCategoryBasic       = "basic"
	ExampleCategoryAdvanced    = "advanced"
	ExampleCategoryDaggerheart = "daggerheart"
	ExampleCategorySpecial     = "special"
)

const helpText = `Dice Notation Help

Basic Dice:
  NdS        roll N dice with S sides (2d6, 1d20, d8)
  + - * /    arithmetic; division rounds down (2d6+3)
  ( )        grouping ((2d6+1)*2)

Modifiers:
  khN / klN  keep highest / lowest N dice (4d6kh3)
  dhN / dlN  drop highest / lowest N dice (6d6dl1)
  !          explode on the highest face
  !>=N       explode on N or higher
  r<=N       reroll N or lower once (3d6r1)
  ro<=N      reroll N or lower until it stops matching

Success Counting:
  >=N        count dice showing N or more (6d6>=4)
  >N =N <=N <N
             other comparisons

Target Numbers:
  t>=N       check the total against N (1d20+5 t>=15)

Special Dice:
  adv / dis  advantage / disadvantage (2d20kh1 / 2d20kl1)
  NdF        N Fate dice showing -1, 0 or +1
  dh aN dN   Hope and Fear d12s with N advantage / disadvantage d6s

Variables:
  @NAME      reference a variable (@STR, @DEX, @PROF)
             names are case-insensitive and shown in uppercase

Examples:
  1d20+@STR+@PROF t>=15
  4d6kh3
  3d6!
  5d10>=6
  dh a@ADV d@DIS + @BONUS t>=@TN
  adv + @DEX
  4dF+@SKILL`

var examples = map[string][]string{
	ExampleCategoryBasic: {
		"1d20",
		"2d6+3",
		"4d6kh3",
		"1d20+5",
		"3d8",
	},
	ExampleCategoryAdvanced: {
		"2d20kh1",
		"2d20kl1",
		"4d6!",
		"6d6>=4",
		"3d6r1",
		"10d10!>=8",
		"4d6kh3+@STR+@PROF",
		"1d20+@DEX t>=15",
	},
	ExampleCategoryDaggerheart: {
		"dh",
		"dh a2",
		"dh d1",
		"dh a@ADV d@DIS",
		"dh a2 d1 + @STR",
		"dh a@ADV d@DIS + @BONUS t>=@TN",
	},
	ExampleCategorySpecial: {
		"4dF",
		"adv",
		"dis",
		"2d10!>=8",
		"6d6kl1",
	},
}

// Help returns a plain-text summary of the notation
func Help() string {
	return helpText
}

// Examples returns sample expressions grouped by category. The returned map
// is a copy.
func Examples() map[string][]string {
	out := make(map[string][]string, len(examples))
	for category, list := range examples {
		out[category] = slices.Clone(list)
	}
	return out
}

// ExampleCategories returns the example category names in display order
func ExampleCategories() []string {
	return []string{
		ExampleCategoryBasic,
		ExampleCategoryAdvanced,
		ExampleCategoryDaggerheart,
		ExampleCategorySpecial,
	}
}
