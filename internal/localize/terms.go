package localize

// techTerms maps English technical phrases to their Chinese display
// form. Longest-match wins, handled by the Translator's term ordering.
var techTerms = map[string]string{
	"artificial intelligence": "人工智能",
	"machine learning":        "机器学习",
	"deep learning":           "深度学习",
	"neural network":          "神经网络",
	"algorithm":               "算法",
	"model":                   "模型",
	"dataset":                 "数据集",
	"training":                "训练",
	"inference":               "推理",
	"prediction":              "预测",

	"convolutional neural network": "卷积神经网络",
	"recurrent neural network":     "循环神经网络",
	"transformer":                  "变换器",
	"attention mechanism":          "注意力机制",
	"backpropagation":              "反向传播",
	"gradient descent":             "梯度下降",
	"overfitting":                  "过拟合",
	"regularization":               "正则化",

	"computer vision":              "计算机视觉",
	"image recognition":            "图像识别",
	"object detection":             "目标检测",
	"image classification":         "图像分类",
	"semantic segmentation":        "语义分割",
	"face recognition":             "人脸识别",

	"natural language processing": "自然语言处理",
	"sentiment analysis":          "情感分析",
	"language model":              "语言模型",
	"large language model":        "大语言模型",
	"tokenization":                "分词",
	"named entity recognition":    "命名实体识别",
	"machine translation":         "机器翻译",
	"text generation":             "文本生成",
	"chatbot":                     "聊天机器人",

	"reinforcement learning": "强化学习",
	"q-learning":             "Q学习",
	"policy gradient":        "策略梯度",
	"reward function":        "奖励函数",

	"robotics":              "机器人技术",
	"autonomous navigation": "自主导航",
	"path planning":         "路径规划",
	"slam":                  "同步定位与建图",

	"research paper":   "研究论文",
	"conference":       "会议",
	"journal":          "期刊",
	"benchmark":        "基准测试",
	"state-of-the-art": "最先进的",
	"evaluation":       "评估",

	"open source":    "开源",
	"repository":     "代码仓库",
	"framework":      "框架",
	"library":        "库",
	"documentation":  "文档",
	"tutorial":       "教程",
	"implementation": "实现",
}

var difficultyNames = map[string]string{
	"beginner":     "入门",
	"intermediate": "中级",
	"advanced":     "高级",
	"expert":       "专家",
}

var sourceTypeNames = map[string]string{
	"github":     "GitHub开源",
	"arxiv":      "arXiv论文",
	"reddit":     "Reddit社区",
	"hackernews": "Hacker News",
	"rss":        "技术博客",
	"blog":       "技术博客",
}

var categoryNames = map[string]string{
	"machine-learning":            "机器学习",
	"deep-learning":               "深度学习",
	"computer-vision":             "计算机视觉",
	"natural-language-processing": "自然语言处理",
	"robotics":                    "机器人技术",
	"reinforcement-learning":      "强化学习",
	"ai-tools":                    "AI工具",
	"research-papers":             "研究论文",
	"industry-news":               "行业资讯",
	"open-source":                 "开源项目",
	"datasets":                    "数据集",
	"tutorials":                   "教程",
	"conferences":                 "会议",
	"other":                       "其他",
}
