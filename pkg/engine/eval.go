package engine

import "github.com/notnil/chess"

// Evaluate scores pos from the side to move's point of view, positive
// meaning the side to move stands better. The score is the difference of
// the two sides' material plus piece-square positional values, with pawn
// placement weighted more heavily in the endgame. Pure function of the
// position.
func Evaluate(pos *chess.Position) int {
	board := pos.Board()

	// First pass collects material so the endgame state is known before
	// any positional value is read.
	var material, pawnCount, queens [2]int
	for sq := chess.A1; sq <= chess.H8; sq++ {
		p := board.Piece(sq)
		if p == chess.NoPiece {
			continue
		}
		c := colorIndex(p.Color())
		switch p.Type() {
		case chess.Pawn:
			pawnCount[c]++
		case chess.Queen:
			queens[c]++
			material[c] += QueenValue
		case chess.King:
		default:
			material[c] += pieceValue(p.Type())
		}
	}

	endgame := (queens[0] == 0 || material[0] < endgameMaterial) &&
		(queens[1] == 0 || material[1] < endgameMaterial)

	var positional, pawnPositional [2]int
	for sq := chess.A1; sq <= chess.H8; sq++ {
		p := board.Piece(sq)
		if p == chess.NoPiece {
			continue
		}
		c := colorIndex(p.Color())
		if p.Type() == chess.Pawn {
			pawnPositional[c] += positionalValue(chess.Pawn, sq, p.Color(), endgame)
			continue
		}
		positional[c] += positionalValue(p.Type(), sq, p.Color(), endgame)
	}
	if endgame {
		// Advanced pawns decide endgames; scale their placement by 1.5.
		pawnPositional[0] = 3 * pawnPositional[0] / 2
		pawnPositional[1] = 3 * pawnPositional[1] / 2
	}

	white := material[0] + pawnCount[0]*PawnValue + positional[0] + pawnPositional[0]
	black := material[1] + pawnCount[1]*PawnValue + positional[1] + pawnPositional[1]
	if pos.Turn() == chess.White {
		return white - black
	}
	return black - white
}

// positionalValue returns the square-table value for a piece of the given
// type and color on sq. Black pieces read the tables rotated (63-sq). The
// king switches tables on the endgame flag.
func positionalValue(pt chess.PieceType, sq chess.Square, c chess.Color, endgame bool) int {
	idx := int(sq)
	if c == chess.Black {
		idx = 63 - idx
	}
	switch pt {
	case chess.Pawn:
		return pawnTable[idx]
	case chess.Knight:
		return knightTable[idx]
	case chess.Bishop:
		return bishopTable[idx]
	case chess.Rook:
		return rookTable[idx]
	case chess.Queen:
		return queenTable[idx]
	case chess.King:
		if endgame {
			return kingEndgameTable[idx]
		}
		return kingTable[idx]
	}
	return 0
}

// pieceValue returns the material weight of a piece type. Kings carry no
// material weight.
func pieceValue(pt chess.PieceType) int {
	switch pt {
	case chess.Pawn:
		return PawnValue
	case chess.Knight:
		return KnightValue
	case chess.Bishop:
		return BishopValue
	case chess.Rook:
		return RookValue
	case chess.Queen:
		return QueenValue
	}
	return 0
}

func colorIndex(c chess.Color) int {
	if c == chess.White {
		return 0
	}
	return 1
}
