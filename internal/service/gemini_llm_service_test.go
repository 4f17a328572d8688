package service

import "testing"

func TestParseGeneratedProblem(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    GeneratedProblem
		wantErr bool
	}{
		{
			name: "plain json",
			raw:  `{"problem_text":"Sam has 12 apples and gives away 5. How many remain?","final_answer":7}`,
			want: GeneratedProblem{ProblemText: "Sam has 12 apples and gives away 5. How many remain?", FinalAnswer: 7},
		},
		{
			name: "fenced json",
			raw:  "```json\n{\"problem_text\":\"A rope is 4.5 m long. Half of it is cut off. How long is the rest?\",\"final_answer\":2.25}\n```",
			want: GeneratedProblem{ProblemText: "A rope is 4.5 m long. Half of it is cut off. How long is the rest?", FinalAnswer: 2.25},
		},
		{
			name: "fenced without language tag",
			raw:  "```\n{\"problem_text\":\"p\",\"final_answer\":1}\n```",
			want: GeneratedProblem{ProblemText: "p", FinalAnswer: 1},
		},
		{
			name: "surrounding whitespace",
			raw:  "  \n{\"problem_text\":\"p\",\"final_answer\":0}\n ",
			want: GeneratedProblem{ProblemText: "p", FinalAnswer: 0},
		},
		{
			name:    "missing final_answer",
			raw:     `{"problem_text":"p"}`,
			wantErr: true,
		},
		{
			name:    "missing problem_text",
			raw:     `{"final_answer":7}`,
			wantErr: true,
		},
		{
			name:    "blank problem_text",
			raw:     `{"problem_text":"   ","final_answer":7}`,
			wantErr: true,
		},
		{
			name:    "answer as string",
			raw:     `{"problem_text":"p","final_answer":"7"}`,
			wantErr: true,
		},
		{
			name:    "not json",
			raw:     "Here is a problem: Sam has 12 apples...",
			wantErr: true,
		},
		{
			name:    "empty response",
			raw:     "",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		got, err := parseGeneratedProblem(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Errorf("%s: expected error, got %+v", tc.name, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
			continue
		}
		if got.ProblemText != tc.want.ProblemText || got.FinalAnswer != tc.want.FinalAnswer {
			t.Errorf("%s: got %+v, want %+v", tc.name, *got, tc.want)
		}
	}
}
