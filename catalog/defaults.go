// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import "github.com/danielhkuo/quickly-survey/models"

const (
	DefaultTitle    = "教学效率调研小助手"
	DefaultIcon     = "📚"
	DefaultPassword = "123456789"
)

// DefaultQuestions returns a fresh copy of the built-in questionnaire
func DefaultQuestions() []models.Question {
	return []models.Question{
		// Profile
		{
			ID:      "role_focus",
			Text:    "1. [基础] 您目前在高校的主要工作重心是？",
			Type:    models.QuestionSingle,
			Options: []string{"教学任务为主", "科研任务为主", "教学科研并重", "行政管理为主"},
		},
		{
			ID:      "ai_freq",
			Text:    "2. [习惯] 您平时使用AI工具的频率？",
			Type:    models.QuestionSingle,
			Options: []string{"几乎不用", "偶尔辅助翻译/搜索", "经常使用", "深度依赖，已融入工作流"},
		},

		// Teaching
		{
			ID:   "teaching_pain",
			Text: "3. [教学] 在备课与授课环节，哪些事最耗费时间？（可多选）",
			Type: models.QuestionMulti,
			Options: []string{
				"PPT课件制作/美化",
				"查找新颖的教学案例/素材",
				"批改作业/实验报告",
				"出试卷/登分",
				"学生答疑/考勤管理",
				"课程思政元素融入",
			},
		},
		{
			ID:   "teaching_wish",
			Text: "4. [教学] 如果有AI助手，您最希望它具备哪些功能？（可多选）",
			Type: models.QuestionMulti,
			Options: []string{
				"一键生成精美PPT课件",
				"自动批改作业并生成评语",
				"智能生成教案/教学大纲",
				"24小时助教自动答疑",
				"自动出题与智能组卷",
				"课堂互动辅助(签到/提问)",
				"学情分析与成绩预测",
			},
		},

		// Papers
		{
			ID:   "paper_pain",
			Text: "5. [论文] 在学术论文写作过程中，最大的拦路虎是？（可多选）",
			Type: models.QuestionMulti,
			Options: []string{
				"海量文献阅读与整理总结",
				"创新点挖掘/选题困难",
				"英文论文润色/翻译/降重",
				"参考文献格式调整/排版",
				"实验数据处理与图表绘制",
			},
		},
		{
			ID:   "paper_wish",
			Text: "6. [论文] 您最希望AI智能体提供什么功能？（可多选）",
			Type: models.QuestionMulti,
			Options: []string{
				"文献综述自动生成",
				"论文深度润色与降重",
				"根据数据自动生成图表/分析",
				"全文格式一键排版",
				"投稿期刊智能推荐",
				"学术专业翻译",
				"研究热点趋势分析",
			},
		},

		// Grant applications
		{
			ID:   "grant_pain",
			Text: "7. [课题] 撰写\"课题申报书\"时，最让您头疼的是？（可多选）",
			Type: models.QuestionMulti,
			Options: []string{
				"研究现状/国内外综述撰写",
				"提炼创新点与研究价值",
				"参考文献的收集与填报",
				"繁琐的格式调整与形式审查",
				"根据不同基金要求调整内容",
			},
		},
		{
			ID:   "grant_wish",
			Text: "8. [课题] 针对申报书，您最需要AI辅助什么？（可多选）",
			Type: models.QuestionMulti,
			Options: []string{
				"基于简单的想法生成申报书初稿",
				"针对特定基金要求的逻辑优化建议",
				"自动补全研究背景与参考文献",
				"形式审查与格式自动校对",
				"历年立项课题分析与参考",
				"预算编制辅助",
			},
		},

		// Product and priorities
		{
			ID:   "agent_form",
			Text: "9. [形态] 您希望这个工具最好长什么样？",
			Type: models.QuestionSingle,
			Options: []string{
				"嵌入在Word/WPS里的插件（边写边用）",
				"嵌入在PPT里的插件",
				"网页端平台（功能最全）",
				"微信/手机端助手（随时可用）",
			},
		},
		{
			ID:   "concern",
			Text: "10. [顾虑] 阻碍您使用AI辅助工作的最大顾虑是？",
			Type: models.QuestionSingle,
			Options: []string{
				"数据隐私/课题泄密",
				"生成内容胡编乱造（幻觉）",
				"被判定为学术不端",
				"费用太高",
			},
		},
		{
			ID:   "budget",
			Text: "11. [费用] 如果能切实解决上述痛点，您的付费意愿是？",
			Type: models.QuestionSingle,
			Options: []string{
				"希望完全免费/使用学校采购版",
				"个人订阅（<30元/月）",
				"个人订阅（30-60元/月）",
				"按单次服务付费",
			},
		},
		{
			ID:   "dev_priority",
			Text: "12. [关键] 最后，如果一定要排个序，您希望我们优先开发哪个板块？",
			Type: models.QuestionSingle,
			Options: []string{
				"先做【教学辅助】（PPT/批改等）",
				"先做【论文辅助】（写作/润色等）",
				"先做【课题申报】（本子撰写等）",
			},
		},
		{
			ID:      "contact_opt",
			Text:    "13. [内测] 感谢！内测版即将上线，您是否愿意第一时间体验？",
			Type:    models.QuestionSingle,
			Options: []string{"愿意，非常期待", "看情况再说", "暂时不需要"},
		},
	}
}
