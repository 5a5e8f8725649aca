package services

import (
	"fmt"
	"strings"

	"scoai/resume-screener/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildResumeAnalysisPrompt creates the scoring prompt for one resume. The
// requested JSON shape follows the analysis options: fields that were not
// selected are not asked for.
func (pb *PromptBuilder) BuildResumeAnalysisPrompt(resumeText string, criteria Criteria) string {
	var requests []string
	if criteria.Options.Skills {
		requests = append(requests, "1. 技能匹配度評分（0-100）")
		requests = append(requests, "2. 主要技能列表")
	}
	if criteria.Options.Experience {
		requests = append(requests, "3. 工作經驗摘要")
	}
	if criteria.Options.Education {
		requests = append(requests, "4. 教育背景")
	}
	if criteria.Options.Projects {
		requests = append(requests, "5. 項目經驗摘要")
	}
	requests = append(requests,
		"6. 是否符合所有必要條件",
		"7. 匹配的加分條件",
		"8. 是否觸及排除條件",
		"9. 整體評估和建議",
	)

	var fields []string
	fields = append(fields, `"score": <number 0-100>`)
	if criteria.Options.Skills {
		fields = append(fields, `"skills": [<技能列表>]`)
	}
	if criteria.Options.Experience {
		fields = append(fields, `"experience": "<工作經驗摘要>"`)
	}
	if criteria.Options.Education {
		fields = append(fields, `"education": "<教育背景>"`)
	}
	if criteria.Options.Projects {
		fields = append(fields, `"projects": "<項目經驗>"`)
	}
	fields = append(fields,
		`"meetsRequirements": <true/false>`,
		`"matchedOptional": [<匹配的加分條件列表>]`,
		`"hasExclusions": <true/false>`,
		`"evaluation": "<整體評估和建議>"`,
	)

	return fmt.Sprintf(`請以 JSON 格式分析以下簡歷內容，並根據給定條件進行評估。
請使用繁體中文回覆。

分析要求：
%s

簡歷內容：
%s

評分標準：
1. 基礎分數：100分
2. 必要條件：缺少任一項必要條件扣40分
3. 加分條件：缺少任一項加分條件扣20分
4. 排除條件：符合任一項排除條件扣40分

條件：
必要條件：%s
加分條件：%s
排除條件：%s

請確保返回的 JSON 格式包含以下字段：
{
  %s
}

請確保返回的是有效的 JSON 格式，不要包含任何其他文本。`,
		strings.Join(requests, "\n"),
		resumeText,
		strings.Join(criteria.Mandatory, ", "),
		strings.Join(criteria.Optional, ", "),
		strings.Join(criteria.Excluded, ", "),
		strings.Join(fields, ",\n  "),
	)
}

// BuildRecommendationPrompt creates the ranking prompt for the current
// shortlist against a free-text requirement.
func (pb *PromptBuilder) BuildRecommendationPrompt(candidates []models.Resume, requirements string) string {
	var profiles []string
	for _, c := range candidates {
		name := c.DisplayName
		if name == "" {
			name = c.ResumeName
		}

		profiles = append(profiles, fmt.Sprintf(`候選人 %s：
- 技能：%s
- 經驗：%s
- 教育背景：%s
- 分數：%s
- 備註：%s`,
			name,
			orNone(c.ResumeTechSkills),
			orNone(c.ResumeExperience),
			orNone(c.ResumeEducation),
			scoreOrNone(c.Score),
			orNone(c.SelectedNote),
		))
	}

	return fmt.Sprintf(`請分析以下候選人清單，並根據給定需求推薦最適合的人選。
請使用繁體中文回覆。
請務必以下列 JSON 格式回覆，不要加入任何其他文字：
{
  "recommendations": [
    {
      "name": "候選人姓名（請使用與輸入相同的名稱）",
      "score": 評分（0-100的數字）,
      "reason": "推薦理由",
      "matching_points": ["符合點1", "符合點2", ...],
      "concerns": ["需注意點1", "需注意點2", ...]
    }
  ],
  "summary": "整體推薦總結"
}

需求：
%s

候選人資料：
%s`,
		requirements,
		strings.Join(profiles, "\n\n"),
	)
}

func orNone(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return "無"
	}
	return *s
}

func scoreOrNone(score *float64) string {
	if score == nil {
		return "無"
	}
	return fmt.Sprintf("%.0f", *score)
}
