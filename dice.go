// Package dice evaluates tabletop dice notation into reproducible, auditable
// roll results.
//
// Expressions combine dice terms, integer literals and named variables with
// arithmetic, die-set modifiers, success counting and target checks:
//
//	4d6kh3+@STR
//	1d20+@DEX t>=15
//	dh a2 d1 t>=@TN
//
// # Basic Usage
//
// Create an engine and roll:
//
//	engine := dice.MustNew()
//	result := engine.Roll("1d20+@STR+@PROF t>=15", map[string]int{
//	    "STR":  3,
//	    "PROF": 2,
//	})
//	fmt.Println(result.Breakdown)
//	// 1d20 (14) = 19 vs >=15 → PASS
//
// Roll never returns an error. A failure becomes a Result with a zero total,
// a Breakdown starting with "Error: " and the Error field set. Use Validate
// or Parse when the error itself is needed.
//
// # Notation
//
//	NdS          N dice with S sides (N defaults to 1)
//	NdF          N Fate dice (-1, 0, +1)
//	khN / klN    keep highest / lowest N
//	dhN / dlN    drop highest / lowest N
//	!  !>=N      explode on the maximum face, or on a condition
//	r<=N         reroll once
//	ro<=N        reroll until the condition no longer holds
//	>=N          count successes instead of summing
//	t>=N         compare the total against a target
//	@NAME        variable, case-insensitive
//	dh aN dN     Hope/Fear duality roll with advantage and disadvantage pools
//	adv / dis    aliases for 2d20kh1 / 2d20kl1
//
// Modifiers on one dice term always apply in the order reroll, explode,
// keep/drop, success count, whatever order they are written in.
//
// # Randomness
//
// The engine draws from a RandomSource. The default CryptoSource is safe for
// concurrent use; NewSeededSource gives reproducible sessions and
// NewScriptedSource replays fixed draws in tests:
//
//	engine := dice.MustNew(dice.WithRandomSource(dice.NewSeededSource(42)))
//
// # Configuration
//
// Customize the engine with functional options, or load them from the
// environment with LoadConfig:
//
//	engine, _ := dice.New(
//	    dice.WithExplodeLimit(20),
//	    dice.WithStrictLexing(true),
//	    dice.WithLogger(logger),
//	)
package dice
