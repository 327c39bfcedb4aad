// Package parser turns identify dumps pasted from the game into item observations.
//
// A dump is a sequence of blocks:
//
//	a rusty dagger (poor)
//	Object 'dagger rusty', Item type: weapon
//	Weight: 3
//	Damage Dice is '1D4'
//
// Each block starts at an Object line. The line right before it, when it is not
// itself an attribute line, is the item name. Attribute lines are classified by an
// ordered table of line rules; every line of the block is also kept verbatim in Raw.
//
// Temporary enchantments (armor +1..+3 together with save_all -1..-3) are stripped
// from the affect list before an observation is returned. See FilterEnchanted.
package parser
