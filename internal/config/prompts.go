package config

// Default prompt templates for each stage. Placeholders are filled with
// fmt.Sprintf by the stage executors; see each stage package for argument
// order.

// DefaultRoleAssessmentPrompt takes the problem text.
const DefaultRoleAssessmentPrompt = `You are participating in a collaborative problem-solving system. You will be given a problem and asked to assess which role you'd be best suited for.

Problem:
%s

Available roles:
- Solver: Generate independent solutions with step-by-step reasoning
- Judge: Evaluate multiple solutions and select the best one

Respond with a JSON object containing:
{
  "role_preferences": ["Solver", "Judge"] (ordered by preference),
  "confidence_by_role": {
    "Solver": 0.0-1.0,
    "Judge": 0.0-1.0
  },
  "reasoning": "Brief explanation of why you chose these preferences"
}`

// DefaultSolverPrompt takes the problem text.
const DefaultSolverPrompt = `You are a problem solver in a collaborative system. Your task is to solve the following problem independently, showing all your reasoning step-by-step.

Problem:
%s

Instructions:
1. Read the problem carefully and understand what is being asked
2. Show your reasoning step-by-step
3. Work through the solution methodically
4. Provide a clear final answer
5. Explain how you arrived at your answer

Respond with a JSON object containing:
{
  "reasoning_steps": ["Step 1: ...", "Step 2: ...", ...],
  "final_answer": "Your final answer here",
  "confidence": 0.0-1.0,
  "approach": "Brief description of your solution approach"
}`

// DefaultReviewerPrompt takes the problem text, the reviewer's own solution,
// the target solver id and the solution under review.
const DefaultReviewerPrompt = `You are a problem solver participating in a collaborative system. You have already solved a problem, and now you need to review another solver's solution.

Original Problem:
%s

Your Solution:
%s

Solution to Review (from %s):
%s

Your task is to provide a thorough, constructive review. Analyze:
1. The correctness of the reasoning
2. Any errors or gaps in the logic
3. The quality of the approach
4. Whether the final answer seems correct
5. Strengths of the solution
6. Suggestions for improvement

Respond with a JSON object containing:
{
  "strengths": ["Strength 1", ...],
  "weaknesses": ["Weakness 1", ...],
  "errors": ["Error 1", ...] (if any),
  "suggestions": ["Suggestion 1", ...],
  "overall_assessment": "Your overall assessment of this solution",
  "answer_correctness": "correct" | "incorrect" | "uncertain",
  "confidence": 0.0-1.0
}`

// DefaultRefinerPrompt takes the problem text, the solver's original
// solution and the formatted peer reviews of it.
const DefaultRefinerPrompt = `You previously solved a problem and received peer reviews. Now you need to refine your solution based on the feedback.

Original Problem:
%s

Your Original Solution:
%s

Peer Reviews:
%s

Your task:
1. Carefully consider each review
2. Decide which critiques are valid and should be addressed
3. Decide which critiques you disagree with and why
4. Produce a refined solution that addresses valid concerns
5. If you believe your original solution was correct, you may keep it but explain why

Respond with a JSON object containing:
{
  "critiques_accepted": ["Critique 1", ...],
  "critiques_rejected": ["Critique 1", ...] (with explanations),
  "refinement_reasoning": "Explanation of how you refined your solution",
  "reasoning_steps": ["Step 1: ...", "Step 2: ...", ...],
  "final_answer": "Your refined final answer",
  "confidence": 0.0-1.0,
  "changed_from_original": true/false,
  "improvement_explanation": "How this version is better (or why you kept the original)"
}`

// DefaultJudgePrompt takes the problem text and the formatted block of all
// solutions, refinements and reviews.
const DefaultJudgePrompt = `You are the judge in a collaborative problem-solving system. Your task is to evaluate all solutions (original and refined) and select the best final answer.

Original Problem:
%s

All Solutions and Reviews:
%s

Your task:
1. Evaluate the quality and correctness of each solution (both original and refined versions)
2. Consider the peer reviews and how well critiques were addressed
3. Determine which solution is most likely to be correct
4. Select the winning solution and final answer

Respond with a JSON object containing:
{
  "winner": "solver_1" | "solver_2" | "solver_3",
  "winning_answer": "The final answer you select",
  "evaluation": {
    "solver_1": {
      "original_score": 0.0-1.0,
      "refined_score": 0.0-1.0,
      "reasoning_quality": "excellent" | "good" | "fair" | "poor",
      "likely_correct": true/false
    },
    "solver_2": {...},
    "solver_3": {...}
  },
  "selection_reasoning": "Detailed explanation of why you selected this winner",
  "consensus_analysis": "Analysis of whether solvers agreed or disagreed",
  "confidence": 0.0-1.0
}`
