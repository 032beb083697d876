package categorizer

// categoryOrder fixes the enumeration order of the taxonomy. Scoring
// ties are broken by this order, first declared wins.
var categoryOrder = []string{
	"machine-learning",
	"deep-learning",
	"computer-vision",
	"natural-language-processing",
	"robotics",
	"reinforcement-learning",
	"ai-tools",
	"research-papers",
	"industry-news",
	"open-source",
	"datasets",
	"tutorials",
	"conferences",
}

var categoryKeywords = map[string][]string{
	"machine-learning": {
		"machine learning", "ml", "supervised learning", "unsupervised learning",
		"classification", "regression", "clustering", "feature engineering",
		"model training", "prediction", "algorithm", "scikit-learn", "sklearn",
	},
	"deep-learning": {
		"deep learning", "neural network", "cnn", "rnn", "lstm", "gru",
		"transformer", "attention", "backpropagation", "gradient descent",
		"tensorflow", "pytorch", "keras", "neural", "layers", "weights",
	},
	"computer-vision": {
		"computer vision", "cv", "image recognition", "object detection",
		"image classification", "face recognition", "opencv", "yolo",
		"image processing", "convolutional", "segmentation", "detection",
	},
	"natural-language-processing": {
		"natural language processing", "nlp", "text processing", "sentiment analysis",
		"language model", "bert", "gpt", "transformer", "tokenization",
		"text classification", "named entity recognition", "ner", "chatbot",
		"language understanding", "text generation", "llm", "large language model",
	},
	"robotics": {
		"robotics", "robot", "autonomous", "navigation", "manipulation",
		"robot learning", "robotic", "automation", "control systems",
		"path planning", "slam", "ros", "robot operating system",
	},
	"reinforcement-learning": {
		"reinforcement learning", "rl", "q-learning", "policy gradient",
		"actor-critic", "reward", "environment", "agent", "markov decision process",
		"mdp", "deep q-network", "dqn", "policy optimization",
	},
	"ai-tools": {
		"framework", "library", "tool", "platform", "sdk", "api",
		"development", "deployment", "mlops", "model serving",
		"jupyter", "notebook", "pipeline", "workflow",
	},
	"research-papers": {
		"paper", "research", "study", "arxiv", "conference", "journal",
		"publication", "academic", "experiment", "methodology",
		"findings", "results", "analysis", "survey",
	},
	"industry-news": {
		"company", "startup", "funding", "acquisition", "product launch",
		"announcement", "partnership", "investment", "business",
		"market", "industry", "commercial", "enterprise",
	},
	"open-source": {
		"open source", "github", "repository", "code", "implementation",
		"library", "framework", "contribution", "community",
		"free", "license", "mit", "apache", "gpl",
	},
	"datasets": {
		"dataset", "data", "benchmark", "corpus", "collection",
		"training data", "test data", "validation", "samples",
		"annotations", "labels", "ground truth",
	},
	"tutorials": {
		"tutorial", "guide", "how to", "step by step", "walkthrough",
		"introduction", "beginner", "learn", "course", "lesson",
		"example", "demo", "hands-on", "practical",
	},
	"conferences": {
		"conference", "workshop", "symposium", "summit", "meetup",
		"neurips", "icml", "iclr", "aaai", "ijcai", "cvpr", "acl",
		"event", "presentation", "talk", "keynote",
	},
}

// relevanceKeywords is the shared AI/ML gate every fetcher applies
// before an item is considered for ingestion. Matching is a plain
// case-insensitive substring check.
var relevanceKeywords = []string{
	"artificial intelligence", "ai", "machine learning", "ml", "deep learning",
	"neural network", "computer vision", "nlp", "natural language processing",
	"reinforcement learning", "transformer", "bert", "gpt", "openai",
	"tensorflow", "pytorch", "keras", "scikit-learn", "opencv",
	"algorithm", "model", "dataset", "robotics", "automation",
	"chatbot", "llm", "large language model", "generative ai",
	"diffusion", "stable diffusion", "classification", "regression",
	"clustering", "optimization",
}
