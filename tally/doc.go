// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tally computes election results on demand.

Nothing derived is stored: results come from the per-candidate vote_count
counter that the voting package maintains. Each call reads all candidates in
one SELECT, so every result reflects a single snapshot of the store.

# Results

For each position:

	total_votes     = sum of vote_count over its candidates
	candidate_count = number of candidates, including those with no votes

and for each candidate with vote_count > 0:

	percentage ≈ 100 * vote_count / total_votes, in hundredths

Hundredths are handed out by largest remainder (see Shares), so a position's
percentages always add up to exactly 100.00 and no single value is more than
0.01 away from its exact share. Three equal candidates get 33.34, 33.33, 33.33.

Example: Mayor candidates with 3 and 1 votes give 75.00 and 25.00, total 4.
*/
package tally
