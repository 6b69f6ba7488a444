package gen

import (
	"fmt"

	"github.com/summitlab/trailguide/internal/model"
)

// All prompts demand Simplified-Chinese text values: the guide is rendered
// for a Chinese-speaking audience regardless of the query language.

const basicPromptTmpl = `你是一位资深的徒步路线向导。用户想了解徒步地点“%s”。
请给出该地点的基础信息:正式名称、所在地区、一句话亮点、难度等级(1到5的整数)、
建议天数、全程公里数、累计爬升。若知道该地点的中心点经纬度,请一并给出。
所有文字字段必须使用简体中文。只输出符合给定结构的JSON。`

const miscPromptTmpl = `你是一位资深的徒步路线向导。请为“%s”(位于%s)补充进阶内容:
一段简介、一段有代入感的徒步见闻故事、装备清单(必备与推荐,各项附理由)、
安全注意事项、最佳季节,以及来自徒步社区的实用建议。
所有文字字段必须使用简体中文。只输出符合给定结构的JSON。`

const routesPromptTmpl = `你是一位资深的徒步路线规划师。请为“%s”(位于%s%s)规划两条不同的徒步方案,
例如一日速攀与两日露营,各方案给出总距离、总耗时、简介,以及按顺序排列的途经点时间线。
每个途经点包含名称、距起点距离、距起点耗时、简短描述;若确切知道真实经纬度则以
[纬度, 经度] 给出,绝不编造坐标——不确定时省略 coordinates 字段。
必须恰好给出两条方案,且每条方案的时间线不能为空。
所有文字字段必须使用简体中文。只输出符合给定结构的JSON。`

func basicPrompt(query string) string {
	return fmt.Sprintf(basicPromptTmpl, query)
}

func miscPrompt(query string, basic model.BasicFields) string {
	name := basic.Name
	if name == "" {
		name = query
	}
	return fmt.Sprintf(miscPromptTmpl, name, basic.Location)
}

func routesPrompt(query string, basic model.BasicFields) string {
	name := basic.Name
	if name == "" {
		name = query
	}
	center := ""
	if basic.CenterCoordinates != nil {
		center = fmt.Sprintf(",中心坐标约 %.4f, %.4f",
			basic.CenterCoordinates.Latitude, basic.CenterCoordinates.Longitude)
	}
	return fmt.Sprintf(routesPromptTmpl, name, basic.Location, center)
}
