package core

import "sort"

// Limits bound how large a conversation may grow.
type Limits struct {
	MaxMessagesPerConversation int
	MaxHistoryContext          int
	SearchNeighbors            int
}

func DefaultLimits() Limits {
	return Limits{
		MaxMessagesPerConversation: 20,
		MaxHistoryContext:          8,
		SearchNeighbors:            5,
	}
}

// Knowledge is the pair of reference indices consulted by the plan provider.
type Knowledge struct {
	NEM KnowledgeIndex
	SEP KnowledgeIndex
}

// Select returns the entries named by keys. SEP entries win on collision.
func (k Knowledge) Select(keys []string) KnowledgeIndex {
	out := make(KnowledgeIndex, len(keys))
	for _, key := range keys {
		if v, ok := k.NEM[key]; ok {
			out[key] = v
		}
		if v, ok := k.SEP[key]; ok {
			out[key] = v
		}
	}
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
